package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the application release.
	Version = "1.2.0"

	// DataFormatVersion tracks the bundled dataset layout.
	DataFormatVersion = "v1"

	// APIVersion tracks the dashboard HTTP API.
	APIVersion = "v1"
)

// Set at build time via -ldflags "-X hoopsight/pkg/contracts.BuildTime=...".
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is the build identity reported by the version endpoint and
// the -version flag. The HTTP layer decides the wire shape.
type VersionInfo struct {
	Version    string
	APIVersion string
	DataFormat string
	BuildTime  string
	GitCommit  string
	GoVersion  string
	OS         string
	Arch       string
}

// GetVersionInfo collects the static build facts plus the running toolchain.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:    Version,
		APIVersion: APIVersion,
		DataFormat: DataFormatVersion,
		BuildTime:  BuildTime,
		GitCommit:  GitCommit,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// GetVersionString is the short banner, e.g. "hoopsight v1.2.0".
func GetVersionString() string {
	return "hoopsight v" + Version
}

// GetFullVersionString is the long banner printed by the -version flag.
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)",
		GetVersionString(), info.GitCommit, info.BuildTime,
		info.GoVersion, info.OS, info.Arch)
}
