package updater

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/oshokin/spigot-launcher/internal/config"
)

// ErrNetwork is returned when the build API cannot be reached or answers
// with something other than the expected payload.
var ErrNetwork = errors.New("build api request failed")

var (
	errMissingBuilds          = errors.New("response has no builds field")
	errEmptyDownload          = errors.New("downloaded artifact is empty")
	errBadHTTPStatus          = errors.New("unexpected http status")
	errSettingsNotInitialised = errors.New("settings are not initialized")
)

const (
	// DefaultFileMode is applied to downloaded jars.
	DefaultFileMode os.FileMode = 0o644

	// jsonContentType forces JSON decoding of listing responses.
	jsonContentType = "application/json"
)

// buildsResponse is the subset of the channel document the updater reads.
type buildsResponse struct {
	// Builds lists build identifiers in ascending order.
	Builds []int `json:"builds"`
}

// ChannelURL returns the build listing endpoint for the configured channel.
func ChannelURL(update *config.AutoUpdate) string {
	return strings.TrimRight(update.APIURL, "/") +
		"/" + url.PathEscape(update.Project) +
		"/versions/" + url.PathEscape(update.DesiredVersion)
}

// DownloadURL returns the binary endpoint of a build in the configured channel.
func DownloadURL(update *config.AutoUpdate, build int) string {
	id := strconv.Itoa(build)
	remoteName := update.Project + "-" + update.DesiredVersion + "-" + id + ".jar"

	return ChannelURL(update) + "/builds/" + id + "/downloads/" + url.PathEscape(remoteName)
}
