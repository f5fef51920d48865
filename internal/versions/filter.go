package versions

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion parses a candidate version string. Parsing is looser than the
// strict semver grammar (a "v" prefix and zero-padded segments are accepted)
// but a full major.minor.patch triple is required, so registry noise like
// "1.0" never competes with real releases.
func ParseVersion(raw string) (*semver.Version, error) {
	parts := strings.SplitN(raw, ".", 3)
	if len(parts) != 3 {
		return nil, semver.ErrInvalidSemVer
	}
	return semver.NewVersion(raw)
}

// FilterValid parses each raw string and drops everything that is not a
// semantic version. Input order is preserved.
func FilterValid(raw []string) []*semver.Version {
	out := make([]*semver.Version, 0, len(raw))
	for _, s := range raw {
		if v, err := ParseVersion(s); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// FilterTrack keeps versions whose major component equals track. A nil track
// is a no-op.
func FilterTrack(vs []*semver.Version, track *uint64) []*semver.Version {
	if track == nil {
		return vs
	}
	out := vs[:0]
	for _, v := range vs {
		if v.Major() == *track {
			out = append(out, v)
		}
	}
	return out
}

// FilterPrerelease drops versions carrying a prerelease component unless
// include is set
func FilterPrerelease(vs []*semver.Version, include bool) []*semver.Version {
	if include {
		return vs
	}
	out := vs[:0]
	for _, v := range vs {
		if v.Prerelease() == "" {
			out = append(out, v)
		}
	}
	return out
}

// FilterBounds keeps versions satisfying every bound present in b under
// standard semver precedence
func FilterBounds(vs []*semver.Version, b Bounds) []*semver.Version {
	if b.Empty() {
		return vs
	}
	out := vs[:0]
	for _, v := range vs {
		if matchesBounds(v, b) {
			out = append(out, v)
		}
	}
	return out
}

func matchesBounds(v *semver.Version, b Bounds) bool {
	if b.GT != nil && !v.GreaterThan(b.GT) {
		return false
	}
	if b.GTE != nil && v.LessThan(b.GTE) {
		return false
	}
	if b.LT != nil && !v.LessThan(b.LT) {
		return false
	}
	if b.LTE != nil && v.GreaterThan(b.LTE) {
		return false
	}
	if b.EQ != nil && !v.Equal(b.EQ) {
		return false
	}
	return true
}

// SortDescending orders versions by semver precedence, highest first
func SortDescending(vs []*semver.Version) {
	sort.Sort(sort.Reverse(semver.Collection(vs)))
}
