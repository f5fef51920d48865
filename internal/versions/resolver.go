package versions

import (
	"github.com/Masterminds/semver/v3"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

// Reasons reported when no version can be selected
const (
	ReasonNoVersionsRetrieved = "no versions retrieved"
	ReasonNoValidVersions     = "no valid semver versions"
	ReasonNoMatch             = "no versions match criteria"
	ReasonPackageNotFound     = "package not found"
)

// Outcome is the terminal result of one resolution: a selected version, or
// the reason none was selected
type Outcome struct {
	Version *semver.Version
	Reason  string
}

// Found reports whether the outcome carries a selected version
func (o Outcome) Found() bool {
	return o.Version != nil
}

// Selected wraps a version in a successful outcome
func Selected(v *semver.Version) Outcome {
	return Outcome{Version: v}
}

// NotFound builds an empty outcome carrying the given reason
func NotFound(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Resolver picks the best version out of a raw list for a query. Clean
// decides how vendor build variants collapse when a query opts in.
type Resolver struct {
	Clean CleanStrategy
}

// NewResolver returns a resolver using the timestamp-suffix clean strategy
func NewResolver() *Resolver {
	return &Resolver{Clean: TimestampSuffix{}}
}

// Resolve filters the raw version list against the query and selects the
// highest surviving version. Filters apply in a fixed order (validity,
// track, prerelease, range) so diagnostics stay deterministic.
func (r *Resolver) Resolve(raw []string, q Query) Outcome {
	if len(raw) == 0 {
		return NotFound(ReasonNoVersionsRetrieved)
	}

	vs := FilterValid(raw)
	if len(vs) == 0 {
		return NotFound(ReasonNoValidVersions)
	}
	parsed := len(vs)

	vs = FilterTrack(vs, q.Track)
	if len(vs) == 0 {
		return NotFound(ReasonNoMatch)
	}
	vs = FilterPrerelease(vs, q.IncludePrereleases)
	if len(vs) == 0 {
		return NotFound(ReasonNoMatch)
	}
	vs = FilterBounds(vs, q.Bounds)
	if len(vs) == 0 {
		return NotFound(ReasonNoMatch)
	}

	SortDescending(vs)
	if q.Source == SourceGitHub && q.PreferClean {
		vs = PreferClean(vs, r.Clean)
	}

	util.Logger.Sugar().Debugf("resolved %s from %d candidates (%d parsed, %d raw)",
		vs[0].Original(), len(vs), parsed, len(raw))

	return Selected(vs[0])
}
