package artifact

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Extension is appended to configured base names.
const Extension = ".jar"

// ErrNoArtifactFound is returned when no artifact can be selected for launch.
var ErrNoArtifactFound = errors.New("no artifact found")

// FileName returns the on-disk name for a configured base name.
func FileName(base string) string {
	return base + Extension
}

// BuildListing is the ordered sequence of build identifiers of a channel.
type BuildListing struct {
	// Channel is the desired version the listing belongs to.
	Channel string
	// Builds are the build identifiers in the order the API returned them.
	Builds []int
}

// LatestStrategy picks the build to install from a listing.
type LatestStrategy func(listing BuildListing) (int, error)

// LastBuild treats the final element of the listing as the latest build.
// The API is trusted to return builds in ascending order.
func LastBuild(listing BuildListing) (int, error) {
	latest, err := lo.Last(listing.Builds)
	if err != nil {
		return 0, fmt.Errorf("channel %s has no builds: %w", listing.Channel, ErrNoArtifactFound)
	}

	return latest, nil
}

// NeedsUpdate reports whether the installed build is older than latest.
func NeedsUpdate(current, latest int) bool {
	return current < latest
}
