// Package badge implements the REST API handlers for package version badges.
package badge

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/registry"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/versions"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
)

// badgeRequest carries everything parsed out of one badge request.
type badgeRequest struct {
	Package   string
	Query     versions.Query
	Overrides model.BadgeOverrides
}

// boundParams maps query string keys to the comparator slots they fill.
var boundParams = []string{"gt", "gte", "lt", "lte", "eq"}

// parseBadgeRequest validates the path and query parameters of a badge
// request. Any error it returns is a client error.
func parseBadgeRequest(c *fiber.Ctx) (*badgeRequest, error) {
	source := c.Params("source")
	if !versions.ValidSource(source) {
		return nil, fmt.Errorf("unsupported source %q (expected %s or %s)", source, versions.SourceNuGet, versions.SourceGitHub)
	}

	pkg := c.Params("package")
	if !registry.ValidPackageName(pkg) {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	query := versions.Query{Source: source}

	if raw := c.Query("track"); raw != "" {
		track, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("track must be a non-negative integer, got %q", raw)
		}
		query.Track = &track
	}

	var err error
	if query.IncludePrereleases, err = queryBool(c, "includePrereleases"); err != nil {
		return nil, err
	}
	if query.PreferClean, err = queryBool(c, "preferClean"); err != nil {
		return nil, err
	}

	for _, key := range boundParams {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		bound, err := versions.ParseBound(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "gt":
			query.Bounds.GT = bound
		case "gte":
			query.Bounds.GTE = bound
		case "lt":
			query.Bounds.LT = bound
		case "lte":
			query.Bounds.LTE = bound
		case "eq":
			query.Bounds.EQ = bound
		}
	}

	return &badgeRequest{
		Package: pkg,
		Query:   query,
		Overrides: model.BadgeOverrides{
			Label: c.Query("label"),
			Color: c.Query("color"),
			Logo:  c.Query("logo"),
		},
	}, nil
}

// queryBool reads an optional boolean query parameter, rejecting anything
// strconv.ParseBool does not understand.
func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}
