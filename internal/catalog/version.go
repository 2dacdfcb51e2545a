package catalog

import (
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultVersion is assumed for content packs without a manifest.
const DefaultVersion = "v1.0.0"

// canonicalVersion accepts versions with or without the leading "v".
func canonicalVersion(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// SameMajor reports whether two content versions share a major version.
// Objective ids are only guaranteed stable within a major version, so
// saved progress from a different major is not reapplied. Invalid or
// empty versions never match.
func SameMajor(a, b string) bool {
	a, b = canonicalVersion(a), canonicalVersion(b)
	if !semver.IsValid(a) || !semver.IsValid(b) {
		return false
	}
	return semver.Major(a) == semver.Major(b)
}

// Newer reports whether version a is strictly newer than b.
func Newer(a, b string) bool {
	return semver.Compare(canonicalVersion(a), canonicalVersion(b)) > 0
}
