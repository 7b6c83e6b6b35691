package version

import "github.com/fatih/color"

// Version information for the coopctl CLI. Channel, GitCommit, GitMessage
// and BuildDate can be overridden at build time via -ldflags -X. Version
// cannot: it is computed at package initialization from Channel.

// Channel names the build's stability track: "dev" for a local build off
// the default semantic version below, "release" once -ldflags overrides
// it at build time. It picks the color and suffix Version renders with.
var Channel = "dev"

var (
	devColor     = color.New(color.FgYellow, color.Bold)
	releaseColor = color.New(color.FgGreen, color.Bold)

	// Version is the semantic version of the CLI, colored by Channel.
	Version = renderVersion("0.1.0")

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

func renderVersion(semver string) string {
	if Channel == "release" {
		return releaseColor.Sprint(semver)
	}
	return devColor.Sprint(semver) + devColor.Sprint("-dev")
}
