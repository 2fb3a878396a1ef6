// Package version describes the control API version and the build.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the control API version served by this build. It is
// advertised over mDNS and returned by the health endpoint.
const Current = "1.0"

// Build information, set at build time via ldflags.
var (
	Build     = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// APIVersion represents a parsed "major.minor" API version.
type APIVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (APIVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return APIVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return APIVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return APIVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return APIVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v APIVersion) Compatible(other APIVersion) bool {
	return v.Major == other.Major
}

// Supports reports whether a client speaking the given API version can
// drive this build.
func Supports(s string) bool {
	other, err := Parse(s)
	if err != nil {
		return false
	}
	current, _ := Parse(Current)
	return current.Compatible(other)
}

// String returns a one-line build description.
func String(program string) string {
	return fmt.Sprintf("%s %s (api %s, built %s, commit %s)", program, Build, Current, BuildDate, GitCommit)
}
