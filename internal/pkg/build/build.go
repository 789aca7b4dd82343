// Package build provides build-time information.
// The values are replaced during the build by ldflags.
package build

// DevVersionValue marks a binary built outside the release pipeline.
const DevVersionValue = "dev"

// nolint: gochecknoglobals
var (
	BuildVersion = DevVersionValue
	BuildDate    = "-"
	GitCommit    = "-"
)
