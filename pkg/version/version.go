// Package version reports how an addrbook binary was built and which file
// formats it reads and writes.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Aman-CERP/addrbook/internal/codec"
	"github.com/Aman-CERP/addrbook/internal/export"
)

// Build stamps, set with
//
//	-ldflags "-X github.com/Aman-CERP/addrbook/pkg/version.Version=v1.2.0 \
//	          -X github.com/Aman-CERP/addrbook/pkg/version.Commit=$(git rev-parse HEAD)"
//
// Commit and Date fall back to the VCS stamps of `go build` when unset.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes the running binary.
type Info struct {
	Version      string `json:"version"`
	Commit       string `json:"commit"`
	Date         string `json:"date"`
	Modified     bool   `json:"modified,omitempty"`
	GoVersion    string `json:"go_version"`
	Platform     string `json:"platform"`
	BookFields   int    `json:"book_fields"`
	ExportSchema int    `json:"export_schema"`
}

// Get collects Info from the ldflags stamps and the embedded build info.
func Get() Info {
	info := Info{
		Version:      Version,
		Commit:       Commit,
		Date:         Date,
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
		BookFields:   codec.FieldCount,
		ExportSchema: export.SchemaVersion,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}

// Short is the bare version, e.g. for scripts.
func Short() string {
	return Version
}

// String is the one-line summary printed by --version and logged at startup.
func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if i.Modified {
		commit += "+dirty"
	}
	return fmt.Sprintf("addrbook %s (%s, %s, %s)", i.Version, commit, i.GoVersion, i.Platform)
}

// Details is the multi-line report of the version command.
func (i Info) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", i)
	fmt.Fprintf(&b, "  built:         %s\n", i.Date)
	fmt.Fprintf(&b, "  book format:   tab-separated, %d fields per contact\n", i.BookFields)
	fmt.Fprintf(&b, "  export schema: %d\n", i.ExportSchema)
	return b.String()
}
