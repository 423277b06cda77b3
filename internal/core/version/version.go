// Package version reports build metadata for the landingrouter binaries
package version

import "runtime/debug"

// BuildInfo holds version information about a binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// set via -ldflags "-X 'landingrouter/internal/core/version.version=v0.1.0' -X 'landingrouter/internal/core/version.commit=abcd'"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

var readBuildInfo = debug.ReadBuildInfo

// Info returns the build info for service
// commit and date fall back to the vcs settings stamped by the go tool
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if info, ok := readBuildInfo(); ok {
		bi.Go = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.Date == "" {
					bi.Date = s.Value
				}
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
