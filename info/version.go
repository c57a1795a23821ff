package info

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

var (
	name        = "portcrypt"
	version     = "dev build"
	buildSource = "[source unknown]"
	buildTime   = "[build time unknown]"
	license     = "AGPL"

	info     *Info
	loadInfo sync.Once
)

// Info holds the programs meta information.
type Info struct {
	Name    string
	Version string
	License string

	Source    string
	BuildTime string

	Commit     string
	CommitTime string
	Dirty      bool

	GoVersion string
}

// Set sets meta information via the main routine. It must be called before
// the modules are started.
func Set(setName string, setVersion string, setLicenseName string) {
	name = setName
	if setLicenseName != "" {
		license = setLicenseName
	}
	if setVersion != "" {
		version = setVersion
	}
}

// GetInfo returns all the meta information about the program.
func GetInfo() *Info {
	loadInfo.Do(func() {
		info = &Info{
			Name:      name,
			Version:   version,
			License:   license,
			Source:    buildSource,
			BuildTime: buildTime,
			GoVersion: runtime.Version(),
		}

		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range buildInfo.Settings {
				switch setting.Key {
				case "vcs.revision":
					info.Commit = setting.Value
				case "vcs.time":
					info.CommitTime = setting.Value
				case "vcs.modified":
					info.Dirty = setting.Value == "true"
				}
			}
			if info.Source == "[source unknown]" && buildInfo.Main.Path != "" {
				info.Source = buildInfo.Main.Path
			}
		}

		if info.Commit == "" {
			info.Commit = "[commit unknown]"
		}
		if info.CommitTime == "" {
			info.CommitTime = "[commit time unknown]"
		}
	})

	return info
}

// Version returns the short version string.
func Version() string {
	info := GetInfo()

	if info.Dirty {
		return info.Version + "*"
	}
	return info.Version
}

// FullVersion returns the full and detailed version string.
func FullVersion() string {
	info := GetInfo()
	builder := new(strings.Builder)

	fmt.Fprintf(builder, "%s %s\n", info.Name, Version())

	fmt.Fprintf(builder, "\nbuilt with %s (%s) %s/%s\n", info.GoVersion, runtime.Compiler, runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(builder, "  at %s\n", info.BuildTime)

	fmt.Fprintf(builder, "\ncommit %s\n", info.Commit)
	fmt.Fprintf(builder, "  at %s\n", info.CommitTime)
	fmt.Fprintf(builder, "  from %s\n", info.Source)

	fmt.Fprintf(builder, "\nLicensed under the %s license.", info.License)

	return builder.String()
}
