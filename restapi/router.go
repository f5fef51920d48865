// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/config"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/cache"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/registry"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/restapi/modules/admin"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/restapi/modules/badge"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/restapi/modules/testresults"
)

// Deps carries the shared collaborators the route handlers need.
type Deps struct {
	Sources map[string]registry.Source
	Results testresults.Fetcher
	Cache   *cache.Cache[*model.TestResultData]
	Config  *config.Config
}

// SetupRoutes configures all REST API routes.
func SetupRoutes(app *fiber.App, deps Deps) {
	tests := testresults.NewHandler(deps.Results, deps.Cache, deps.Config.CacheTTL(), deps.Config.ResultsPageURL)

	// Package version badges
	app.Get("/badge/:source/:package", badge.GetPackageBadge(deps.Sources))

	// Test result badges and redirects
	testRoutes := app.Group("/tests")
	testRoutes.Get("/:platform", tests.GetBadge)
	testRoutes.Get("/:platform/redirect", tests.GetRedirect)

	// Cache management
	adminRoutes := app.Group("/admin")
	adminRoutes.Delete("/cache", admin.InvalidateCache(deps.Cache))
	adminRoutes.Delete("/cache/:platform", admin.InvalidatePlatform(deps.Cache))
	adminRoutes.Delete("/cache/:platform/:track", admin.InvalidateKey(deps.Cache))

	log.Println("API routes initialized successfully")
}
