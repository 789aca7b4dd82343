package version

import (
	"context"
	"time"

	"github.com/Masterminds/semver"

	"github.com/osdpack/osdpack/internal/pkg/build"
	"github.com/osdpack/osdpack/internal/pkg/client"
	"github.com/osdpack/osdpack/internal/pkg/env"
	"github.com/osdpack/osdpack/internal/pkg/log"
	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

// EnvVersionCheck disables the update check when set to "false".
const EnvVersionCheck = "OSDPACK_VERSION_CHECK"

const checkTimeout = 3 * time.Second

type checker struct {
	api    *client.Client
	logger log.Logger
	envs   *env.Map
	cancel context.CancelFunc
}

// NewGitHubChecker warns the user when a newer released version exists.
// The check is best-effort, a failure must never break the command.
func NewGitHubChecker(parentCtx context.Context, logger log.Logger, envs *env.Map) *checker {
	ctx, cancel := context.WithTimeout(parentCtx, checkTimeout)
	api := client.New(ctx, logger, false).WithHostUrl("https://api.github.com")
	return &checker{api: api, logger: logger, envs: envs, cancel: cancel}
}

func (c *checker) CheckIfLatest(currentVersion string) error {
	defer c.cancel()

	if value, found := c.envs.Lookup(EnvVersionCheck); found && value == "false" {
		return errors.Errorf("skipped, disabled by %s", EnvVersionCheck)
	}

	if currentVersion == build.DevVersionValue {
		return errors.New("skipped, found dev build")
	}

	latestVersion, err := c.getLatestVersion()
	if err != nil {
		return err
	}

	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return errors.PrefixErrorf(err, `cannot parse current version "%s"`, currentVersion)
	}

	latest, err := semver.NewVersion(latestVersion)
	if err != nil {
		return errors.PrefixErrorf(err, `cannot parse latest version "%s"`, latestVersion)
	}

	if current.LessThan(latest) {
		c.logger.Warn(`*******************************************************`)
		c.logger.Warnf(`WARNING: A new version "%s" is available.`, latestVersion)
		c.logger.Warnf(`You are currently using the version "%s".`, current.String())
		c.logger.Warn(`Please update to get the latest features and bug fixes.`)
		c.logger.Warn(`Read more: https://github.com/osdpack/osdpack/releases`)
		c.logger.Warn(`*******************************************************`)
		c.logger.Warn()
	}

	return nil
}

// getLatestVersion returns the tag of the newest release with assets,
// releases without binaries are skipped.
func (c *checker) getLatestVersion() (string, error) {
	result := make([]interface{}, 0)
	response, err := c.api.R().
		SetQueryParam("per_page", "50").
		SetResult(&result).
		Get("/repos/osdpack/osdpack/releases")
	if err != nil {
		return "", err
	}
	if response.IsError() {
		return "", errors.Errorf("GitHub API returned http code %d", response.StatusCode())
	}

	// The releases are sorted from the newest
	for _, item := range result {
		release, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		assets, ok := release["assets"].([]interface{})
		if !ok || len(assets) == 0 {
			continue
		}
		if tag, ok := release["tag_name"].(string); ok && tag != "" {
			return tag, nil
		}
	}

	return "", errors.New("no release found")
}
