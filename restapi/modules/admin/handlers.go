// Package admin implements the REST API handlers for admin operations.
// It provides endpoints for dropping cached test-result documents so a
// badge refresh does not have to wait out the TTL.
package admin

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/cache"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/registry"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/restapi/modules/testresults"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

// InvalidateCache drops every cached result document.
func InvalidateCache(store *cache.Cache[*model.TestResultData]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		removed := store.Clear()
		util.Logger.Sugar().Infof("Cache cleared, %d entries removed", removed)
		return c.JSON(fiber.Map{"success": true, "removed": removed})
	}
}

// InvalidatePlatform drops every cached result document for one platform.
func InvalidatePlatform(store *cache.Cache[*model.TestResultData]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		platform := c.Params("platform")
		if !testresults.ValidPlatform(platform) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unsupported platform %q", platform),
			})
		}

		removed := store.InvalidatePrefix(platform + "/")
		return c.JSON(fiber.Map{"success": true, "removed": removed})
	}
}

// InvalidateKey drops a single cached result document, addressed by
// platform and track plus an optional package query parameter.
func InvalidateKey(store *cache.Cache[*model.TestResultData]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		platform := c.Params("platform")
		if !testresults.ValidPlatform(platform) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unsupported platform %q", platform),
			})
		}
		track := c.Params("track")
		if !testresults.ValidTrack(track) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid track %q (expected v<major>)", track),
			})
		}
		pkg := c.Query("package")
		if pkg != "" && !registry.ValidPackageName(pkg) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid package name %q", pkg),
			})
		}

		removed := 0
		if store.Invalidate(testresults.CacheKey(platform, track, pkg)) {
			removed = 1
		}
		return c.JSON(fiber.Map{"success": true, "removed": removed})
	}
}
