// Package version holds shardcost build metadata, logged on server startup.
package version

// Injected at build time:
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.3 \
//	  -X .../internal/version.Commit=$(git rev-parse --short HEAD)"
//
//nolint:revive
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
