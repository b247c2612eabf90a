// Package env holds build-time metadata injected via -ldflags, so
// the CLI banner can report a real build identity instead of a
// hardcoded string.
package env

// Version, CommitHash and BuildTime are overridden at build time with
// -ldflags "-X github.com/lifegpc/circus-crx-tool/internal/env.Version=...".
// Their default values are used for local, unflagged builds.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

// AppName is the program name. It matches cmd.AppName, which is the
// name the root command uses in its usage text.
const AppName = "crxtool"
