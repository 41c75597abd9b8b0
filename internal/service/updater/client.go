package updater

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	goupdate "github.com/doitdistributed/go-update"
	"github.com/go-resty/resty/v2"

	"github.com/oshokin/spigot-launcher/internal/config"
	"github.com/oshokin/spigot-launcher/internal/domain/artifact"
	"github.com/oshokin/spigot-launcher/internal/logger"
	"github.com/oshokin/spigot-launcher/internal/repository/settings"
	"github.com/oshokin/spigot-launcher/internal/version"
)

// Client keeps the configured jar in sync with the newest build of a channel.
type Client struct {
	// http performs listing and download requests.
	http *resty.Client
	// repo persists the configuration after a successful download.
	repo settings.Repository
	// latest decides which build of a listing is the newest.
	latest artifact.LatestStrategy
	// dir is where the jar is written.
	dir string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the resty client, e.g. to set a transport or timeout.
func WithHTTPClient(client *resty.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLatestStrategy replaces the latest-build selection.
func WithLatestStrategy(strategy artifact.LatestStrategy) Option {
	return func(c *Client) {
		if strategy != nil {
			c.latest = strategy
		}
	}
}

// WithDirectory sets the directory the jar is written to.
func WithDirectory(dir string) Option {
	return func(c *Client) {
		c.dir = dir
	}
}

// New creates a Client persisting configuration through repo.
func New(repo settings.Repository, opts ...Option) *Client {
	c := &Client{
		http:   resty.New().SetHeader("User-Agent", version.UserAgent()),
		repo:   repo,
		latest: artifact.LastBuild,
		dir:    ".",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CheckAndUpdate compares the installed build with the newest one of the
// channel and downloads it when needed. The returned name is always the
// configured file name with the jar extension. The configuration is persisted
// only after the jar has been fully written; on error the input is left untouched.
func (c *Client) CheckAndUpdate(ctx context.Context, cfg *config.Config) (string, *config.Config, error) {
	if cfg == nil {
		return "", nil, errSettingsNotInitialised
	}

	update := cfg.AutoUpdate
	jar := artifact.FileName(update.FileName)

	logger.InfoKV(ctx, "Checking for a new build",
		"project", update.Project, "channel", update.DesiredVersion, "current", update.CurrentVersion)

	listing, err := c.fetchListing(ctx, &update)
	if err != nil {
		return "", nil, err
	}

	latest, err := c.latest(listing)
	if err != nil {
		return "", nil, err
	}

	if !artifact.NeedsUpdate(update.CurrentVersion, latest) {
		logger.InfoKV(ctx, "No new build found", "current", update.CurrentVersion, "latest", latest)

		return jar, cfg, nil
	}

	logger.InfoKV(ctx, "New build found, downloading", "build", latest)

	data, err := c.download(ctx, &update, latest)
	if err != nil {
		return "", nil, err
	}

	target := filepath.Join(c.dir, jar)
	if err = apply(target, data); err != nil {
		return "", nil, fmt.Errorf("write %s: %w", target, err)
	}

	updated := *cfg
	updated.AutoUpdate.CurrentVersion = latest

	if err = c.repo.Save(ctx, &updated); err != nil {
		return "", nil, fmt.Errorf("record build %d: %w", latest, err)
	}

	logger.InfoKV(ctx, "Build installed", "build", latest, "jar", target, "bytes", len(data))

	return jar, &updated, nil
}

// fetchListing downloads and decodes the channel build listing.
func (c *Client) fetchListing(ctx context.Context, update *config.AutoUpdate) (artifact.BuildListing, error) {
	callCtx, cancel := callContext(ctx, update.TimeoutSeconds)
	defer cancel()

	channelURL := ChannelURL(update)

	var body buildsResponse

	response, err := c.http.R().
		SetContext(callCtx).
		SetResult(&body).
		ForceContentType(jsonContentType).
		Get(channelURL)
	if err != nil {
		return artifact.BuildListing{}, fmt.Errorf("%w: %s: %w", ErrNetwork, channelURL, err)
	}

	if !response.IsSuccess() {
		return artifact.BuildListing{}, fmt.Errorf("%w: %s, %s: %w", ErrNetwork, channelURL, response.Status(), errBadHTTPStatus)
	}

	if body.Builds == nil {
		return artifact.BuildListing{}, fmt.Errorf("%w: %s: %w", ErrNetwork, channelURL, errMissingBuilds)
	}

	logger.DebugKV(ctx, "Fetched build listing", "url", channelURL, "builds", len(body.Builds))

	return artifact.BuildListing{
		Channel: update.DesiredVersion,
		Builds:  body.Builds,
	}, nil
}

// download fetches the full jar of a build.
func (c *Client) download(ctx context.Context, update *config.AutoUpdate, build int) ([]byte, error) {
	callCtx, cancel := callContext(ctx, update.TimeoutSeconds)
	defer cancel()

	downloadURL := DownloadURL(update, build)

	response, err := c.http.R().
		SetContext(callCtx).
		Get(downloadURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNetwork, downloadURL, err)
	}

	if !response.IsSuccess() {
		return nil, fmt.Errorf("%w: %s, %s: %w", ErrNetwork, downloadURL, response.Status(), errBadHTTPStatus)
	}

	data := response.Body()
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrNetwork, downloadURL, errEmptyDownload)
	}

	return data, nil
}

// apply replaces target with data using go-update so a reader never sees a
// partially written jar.
func apply(target string, data []byte) error {
	if _, err := os.Stat(target); err != nil && os.IsNotExist(err) {
		placeholder, err := os.Create(target)
		if err != nil {
			return err
		}

		if err = placeholder.Close(); err != nil {
			return err
		}
	}

	options := goupdate.Options{
		TargetPath: target,
		TargetMode: DefaultFileMode,
	}

	return goupdate.Apply(bytes.NewReader(data), options)
}

// callContext bounds a request by the configured timeout, if any.
func callContext(ctx context.Context, timeoutSeconds int) (context.Context, context.CancelFunc) {
	if timeoutSeconds <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
}
