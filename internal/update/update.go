// Package update asks GitHub whether a newer techmood release exists.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// ReleasesURL is the latest-release endpoint of the techmood repository.
const ReleasesURL = "https://api.github.com/repos/matheuskafuri/techmood/releases/latest"

// Result holds the outcome of a version check.
type Result struct {
	LatestVersion string
	URL           string
}

type ghRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries a GitHub latest-release endpoint.
type Checker struct {
	URL  string
	HTTP *http.Client
}

// Check reports the latest release when it is newer than currentVersion. A
// nil result with a nil error means the build is current. Builds without a
// semantic version, such as "dev", are told about any release.
func (c Checker) Check(ctx context.Context, currentVersion string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := c.URL
	if url == "" {
		url = ReleasesURL
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checking for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checking for updates: status %d", resp.StatusCode)
	}

	var release ghRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding release: %w", err)
	}

	latest, err := semver.NewVersion(release.TagName)
	if err != nil {
		return nil, fmt.Errorf("release tag %q: %w", release.TagName, err)
	}
	if current, err := semver.NewVersion(strings.TrimSpace(currentVersion)); err == nil && !latest.GreaterThan(current) {
		return nil, nil
	}

	return &Result{LatestVersion: latest.String(), URL: release.HTMLURL}, nil
}
