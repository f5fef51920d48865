package api

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/config"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/cache"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/registry"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/results"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/versions"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/restapi"
)

// NewFiberApp creates and configures a Fiber app with the badge routes
func NewFiberApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "localstack-badge-service API v1.0",
		ReadTimeout: 60 * time.Second,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, HEAD, DELETE, OPTIONS",
	}))
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	httpClient := &http.Client{Timeout: cfg.FetchTimeout()}
	sources := map[string]registry.Source{
		versions.SourceNuGet:  registry.NewNuGet(cfg.NuGetBaseURL, httpClient),
		versions.SourceGitHub: registry.NewGitHub(cfg.GitHubAPIURL, cfg.GitHubOrg, cfg.GitHubToken, httpClient),
	}

	resultsCache := cache.New[*model.TestResultData](
		cache.WithValidator[*model.TestResultData](func(d *model.TestResultData) error { return d.Validate() }),
	)

	restapi.SetupRoutes(app, restapi.Deps{
		Sources: sources,
		Results: results.NewClient(cfg.ResultsBaseURL),
		Cache:   resultsCache,
		Config:  cfg,
	})

	return app
}
