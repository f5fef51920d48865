package versions

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// CleanStrategy identifies automated build variants of a manually tagged
// version. Implementations map a version string to its base identity and
// report whether a vendor build suffix was stripped to get there.
type CleanStrategy interface {
	BaseIdentity(raw string) (base string, stripped bool)
}

// timestamp suffix appended by CI to rebuilt prerelease tags,
// e.g. "2.0.0-preview1-20250716-125702"
var timestampSuffix = regexp.MustCompile(`-\d{8}-\d{6}$`)

// TimestampSuffix strips the trailing "-NNNNNNNN-NNNNNN" build timestamp
type TimestampSuffix struct{}

// BaseIdentity returns the version string without its build timestamp
func (TimestampSuffix) BaseIdentity(raw string) (string, bool) {
	base := timestampSuffix.ReplaceAllString(raw, "")
	return base, base != raw
}

// PreferClean collapses build variants down to a single representative per
// base identity. The untouched tag wins over any timestamped rebuild of it;
// a group with only timestamped members keeps the first seen. The reduced
// set comes back in descending semver order.
func PreferClean(vs []*semver.Version, strategy CleanStrategy) []*semver.Version {
	chosen := make(map[string]*semver.Version, len(vs))
	order := make([]string, 0, len(vs))

	for _, v := range vs {
		base, stripped := strategy.BaseIdentity(v.Original())
		cur, seen := chosen[base]
		if !seen {
			chosen[base] = v
			order = append(order, base)
			continue
		}
		if stripped {
			continue
		}
		if _, curStripped := strategy.BaseIdentity(cur.Original()); curStripped {
			chosen[base] = v
		}
	}

	out := make([]*semver.Version, 0, len(order))
	for _, base := range order {
		out = append(out, chosen[base])
	}
	SortDescending(out)
	return out
}
