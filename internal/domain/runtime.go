package domain

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

var versionToken = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// RuntimeVersion is compared field by field; string ordering would rank "3.9" above "3.10".
type RuntimeVersion struct {
	Major uint64
	Minor uint64
}

// ParseRuntimeVersion extracts the first dotted version from raw, e.g. "Python 3.10.4".
func ParseRuntimeVersion(raw string) (RuntimeVersion, error) {
	token := versionToken.FindString(raw)
	if token == "" {
		return RuntimeVersion{}, fmt.Errorf("no version found in %q", raw)
	}
	v, err := semver.NewVersion(token)
	if err != nil {
		return RuntimeVersion{}, fmt.Errorf("parse version %q: %w", token, err)
	}
	return RuntimeVersion{Major: v.Major(), Minor: v.Minor()}, nil
}

// Satisfies reports whether v meets min: a greater major, or an equal major with minor >= min's.
func (v RuntimeVersion) Satisfies(min RuntimeVersion) bool {
	if v.Major != min.Major {
		return v.Major > min.Major
	}
	return v.Minor >= min.Minor
}

func (v RuntimeVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// RuntimeInfo describes the interpreter found on the host.
type RuntimeInfo struct {
	Command string
	Path    string
	Version RuntimeVersion
	Found   bool
}
