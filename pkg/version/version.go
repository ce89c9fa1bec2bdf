package version

import (
	"reflect"
	"strconv"
	"strings"
)

// BinaryGitHash is the Git hash of the solast binary file which is executing.
var BinaryGitHash = "<unknown>"

// Binary is solast's API version, read at init from a ".vN" suffix on this
// package's import path; it is 0 when the path has no such suffix.
var Binary = 0

// Version, Commit, and Date are set via -ldflags at release build time and
// default to these placeholders for `go install`/dev builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type versionProbe struct{}

func init() {
	parts := strings.Split(reflect.TypeOf(versionProbe{}).PkgPath(), ".")
	Binary, _ = strconv.Atoi(parts[len(parts)-1][1:])
}
