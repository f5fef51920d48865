package testresults

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

// GetBadge renders the most recent test results for a platform as a
// shields.io badge. Upstream failures degrade to stale cache entries and
// then to an "unavailable" badge, never to an error response.
func (h *Handler) GetBadge(c *fiber.Ctx) error {
	key, err := parseResultKey(c, c.Params("platform"), c.Query("track"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	badge := model.TestBadge(h.lookup(c.Context(), key))
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", badge.CacheSeconds))
	return c.JSON(badge)
}

// GetRedirect sends the caller to the HTML page of the run that produced the
// current results, falling back to the configured results page.
func (h *Handler) GetRedirect(c *fiber.Ctx) error {
	key, err := parseResultKey(c, c.Params("platform"), c.Query("track"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	target := h.pageURL
	if data := h.lookup(c.Context(), key); data != nil && data.URLHTML != "" {
		target = data.URLHTML
	}
	return c.Redirect(target, fiber.StatusFound)
}

// lookup consults the cache and absorbs every failure into a nil document.
func (h *Handler) lookup(ctx context.Context, key resultKey) *model.TestResultData {
	data, err := h.cache.GetOrFetch(ctx, key.String(), h.ttl, func(ctx context.Context) (*model.TestResultData, error) {
		return h.fetcher.Fetch(ctx, key.Platform, key.Track, key.Package)
	})
	if err != nil {
		util.Logger.Sugar().Warnf("Test results unavailable for %s: %v", key, err)
		return nil
	}
	return data
}

