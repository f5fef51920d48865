// Package versions implements semantic version filtering, vendor build
// tie-breaking, and best-version selection for package badge queries.
package versions

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Supported upstream source identifiers
const (
	SourceNuGet  = "nuget"
	SourceGitHub = "github"
)

// ValidSource reports whether s names a supported upstream source
func ValidSource(s string) bool {
	return s == SourceNuGet || s == SourceGitHub
}

// Bounds holds the optional range limits of a query. Each bound is a fully
// coerced version or nil when absent.
type Bounds struct {
	GT  *semver.Version
	GTE *semver.Version
	LT  *semver.Version
	LTE *semver.Version
	EQ  *semver.Version
}

// Empty reports whether no bound is set
func (b Bounds) Empty() bool {
	return b.GT == nil && b.GTE == nil && b.LT == nil && b.LTE == nil && b.EQ == nil
}

// Query is the validated criteria set for a single resolution call.
// Constructed once per request and never mutated.
type Query struct {
	Source             string
	Track              *uint64
	IncludePrereleases bool
	PreferClean        bool
	Bounds             Bounds
}

// ParseBound coerces a raw range bound to a full semantic version. Partial
// bounds like "2" or "2.0" become "2.0.0"; a "-0" prerelease suffix is the
// documented way to pull prereleases into a range. Bounds that cannot be
// coerced are rejected so malformed queries fail before any network call.
func ParseBound(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid version bound %q: %w", raw, err)
	}
	return v, nil
}
