// Package model defines the wire-level data structures of the badge
// service: the shields.io endpoint badge payload and the CI test-result
// document, plus the projections that build badges from domain outcomes.
package model

import (
	"fmt"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/versions"
)

// shields.io color names used by the projections
const (
	ColorBlue      = "blue"
	ColorOrange    = "orange"
	ColorLightGrey = "lightgrey"
	ColorSuccess   = "success"
	ColorCritical  = "critical"
)

// Cache lifetimes advertised on badge payloads and Cache-Control headers.
// Unavailable badges expire faster so consumers recover quickly once the
// upstream data source comes back.
const (
	CacheSecondsData        = 300
	CacheSecondsUnavailable = 60
)

// TestBadgeLabel is fixed: test-badge semantics are standardized across
// platforms and not caller-customizable
const TestBadgeLabel = "tests"

// Badge is the shields.io endpoint badge schema
type Badge struct {
	SchemaVersion int    `json:"schemaVersion"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Color         string `json:"color"`
	NamedLogo     string `json:"namedLogo,omitempty"`
	CacheSeconds  int    `json:"cacheSeconds,omitempty"`
}

// BadgeOverrides carries caller-supplied presentation overrides. Empty
// fields fall back to the projection defaults.
type BadgeOverrides struct {
	Label string
	Color string
	Logo  string
}

// VersionBadge projects a resolution outcome to a package badge. Label and
// logo default to the source id. A color override never applies to the
// not-found case so absence always renders the same way.
func VersionBadge(outcome versions.Outcome, source string, o BadgeOverrides) Badge {
	b := Badge{
		SchemaVersion: 1,
		Label:         source,
		NamedLogo:     source,
		CacheSeconds:  CacheSecondsData,
	}
	if o.Label != "" {
		b.Label = o.Label
	}
	if o.Logo != "" {
		b.NamedLogo = o.Logo
	}

	if !outcome.Found() {
		b.Message = "not found"
		b.Color = ColorLightGrey
		return b
	}

	b.Message = outcome.Version.Original()
	if outcome.Version.Prerelease() != "" {
		b.Color = ColorOrange
	} else {
		b.Color = ColorBlue
	}
	if o.Color != "" {
		b.Color = o.Color
	}
	return b
}

// TestBadge projects a test-result payload to a badge. A nil payload renders
// the unavailable badge.
func TestBadge(data *TestResultData) Badge {
	b := Badge{
		SchemaVersion: 1,
		Label:         TestBadgeLabel,
	}
	if data == nil {
		b.Message = "unavailable"
		b.Color = ColorLightGrey
		b.CacheSeconds = CacheSecondsUnavailable
		return b
	}

	b.CacheSeconds = CacheSecondsData
	if data.Failed > 0 {
		b.Message = fmt.Sprintf("%d failed, %d passed", data.Failed, data.Passed)
		b.Color = ColorCritical
	} else {
		b.Message = fmt.Sprintf("%d passed", data.Passed)
		b.Color = ColorSuccess
	}
	return b
}
