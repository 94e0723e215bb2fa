// Package version provides build-time and protocol version information.
//
// Build variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/sKeLeTr0n/OBSRemote/internal/version.Version=1.1.0 \
//	                   -X github.com/sKeLeTr0n/OBSRemote/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

// Protocol is the remote API version reported by GetVersion.
const Protocol = 1.1

// Build-time variables (set via ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns a formatted version string.
func String() string {
	return Version + " (" + Commit + ") built " + BuildTime
}
