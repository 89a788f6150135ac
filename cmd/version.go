package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/nulzo/greencode-advisor/internal/cli"
	"go.uber.org/zap"
)

// AppVersion is set at build time with -ldflags "-X .../cmd.AppVersion=v1.2.3".
var AppVersion = "v0.1.0"

const LatestReleaseURL = "https://api.github.com/repos/nulzo/greencode-advisor/releases/latest"

type GitHubRelease struct {
	TagName string `json:"tag_name"`
}

// UpdateChecker compares the running version with the latest GitHub release.
type UpdateChecker struct {
	URL    string
	Client *http.Client
}

func NewUpdateChecker() *UpdateChecker {
	return &UpdateChecker{
		URL:    LatestReleaseURL,
		Client: &http.Client{Timeout: 2 * time.Second},
	}
}

// Latest returns the latest release tag and whether current is older than it.
func (u *UpdateChecker) Latest(ctx context.Context, current string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("fetch latest release: unexpected status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", false, fmt.Errorf("decode release: %w", err)
	}

	running, err := version.NewVersion(current)
	if err != nil {
		return "", false, fmt.Errorf("parse running version %q: %w", current, err)
	}
	latest, err := version.NewVersion(release.TagName)
	if err != nil {
		return "", false, fmt.Errorf("parse release version %q: %w", release.TagName, err)
	}

	return release.TagName, running.LessThan(latest), nil
}

// CheckForUpdates logs a warning when a newer release exists. Failures are
// logged at debug level only; an offline machine is not an error.
func CheckForUpdates(ctx context.Context, checker *UpdateChecker, logger *zap.Logger) {
	latest, outdated, err := checker.Latest(ctx, AppVersion)
	if err != nil {
		logger.Debug("Update check skipped", zap.Error(err))
		return
	}
	if outdated {
		logger.Warn(fmt.Sprintf("%s %s", cli.WarningSign(), cli.Stylize("A newer version is available", cli.Yellow)),
			zap.String("running", AppVersion),
			zap.String("latest", latest),
		)
	}
}
