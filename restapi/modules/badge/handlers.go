package badge

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/registry"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/versions"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

// GetPackageBadge resolves the best matching version of a package and renders
// it as a shields.io badge. A package or version that cannot be found still
// renders a badge with status 200; only malformed requests (400) and upstream
// failures (500) break out of badge rendering.
func GetPackageBadge(sources map[string]registry.Source) fiber.Handler {
	resolver := versions.NewResolver()

	return func(c *fiber.Ctx) error {
		req, err := parseBadgeRequest(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		source := sources[req.Query.Source]

		var outcome versions.Outcome
		raw, err := source.FetchVersions(c.Context(), req.Package)
		switch {
		case err == nil:
			outcome = resolver.Resolve(raw, req.Query)
		case errors.Is(err, registry.ErrNotFound):
			outcome = versions.NotFound(versions.ReasonPackageNotFound)
		default:
			util.Logger.Sugar().Errorf("Failed to fetch %s versions for %s: %v", req.Query.Source, req.Package, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		badge := model.VersionBadge(outcome, req.Query.Source, req.Overrides)
		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", badge.CacheSeconds))
		return c.JSON(badge)
	}
}
