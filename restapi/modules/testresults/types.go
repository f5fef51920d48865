// Package testresults implements the REST API handlers for CI test-result
// badges and run-page redirects.
package testresults

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/cache"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/registry"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
)

// DefaultTrack names the track dimension used when a request omits one.
const DefaultTrack = "v2"

// trackPattern matches the major-version track labels published alongside
// the test results, e.g. "v1" and "v2".
var trackPattern = regexp.MustCompile(`^v\d+$`)

// knownPlatforms lists the CI matrix platforms that publish results
var knownPlatforms = map[string]bool{
	"linux":   true,
	"windows": true,
	"macos":   true,
}

// ValidPlatform reports whether the CI matrix publishes results for platform.
func ValidPlatform(platform string) bool {
	return knownPlatforms[platform]
}

// ValidTrack reports whether track is a well-formed track label.
func ValidTrack(track string) bool {
	return trackPattern.MatchString(track)
}

// CacheKey builds the cache key for one result document. The package
// dimension is optional.
func CacheKey(platform, track, pkg string) string {
	if pkg != "" {
		return cache.Key(platform, track, pkg)
	}
	return cache.Key(platform, track)
}

// Fetcher retrieves one test-result document from the publishing site.
type Fetcher interface {
	Fetch(ctx context.Context, platform, track, pkg string) (*model.TestResultData, error)
}

// Handler serves the test-result endpoints backed by the TTL cache.
type Handler struct {
	fetcher Fetcher
	cache   *cache.Cache[*model.TestResultData]
	ttl     time.Duration
	pageURL string
}

// NewHandler wires the cache in front of the fetcher. pageURL is the
// redirect target used when a result document carries no run URL.
func NewHandler(fetcher Fetcher, c *cache.Cache[*model.TestResultData], ttl time.Duration, pageURL string) *Handler {
	return &Handler{fetcher: fetcher, cache: c, ttl: ttl, pageURL: pageURL}
}

// resultKey identifies one cached result document.
type resultKey struct {
	Platform string
	Track    string
	Package  string
}

func (k resultKey) String() string {
	return CacheKey(k.Platform, k.Track, k.Package)
}

// parseResultKey validates the platform, track, and package dimensions of a
// test-result request. Any error it returns is a client error.
func parseResultKey(c *fiber.Ctx, platform, track string) (resultKey, error) {
	if !ValidPlatform(platform) {
		return resultKey{}, fmt.Errorf("unsupported platform %q (expected linux, windows, or macos)", platform)
	}
	if track == "" {
		track = DefaultTrack
	}
	if !ValidTrack(track) {
		return resultKey{}, fmt.Errorf("invalid track %q (expected v<major>)", track)
	}
	pkg := c.Query("package")
	if pkg != "" && !registry.ValidPackageName(pkg) {
		return resultKey{}, fmt.Errorf("invalid package name %q", pkg)
	}
	return resultKey{Platform: platform, Track: track, Package: pkg}, nil
}
