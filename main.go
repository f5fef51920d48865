// package main provides the entry point for the localstack-badge-service,
// serving shields.io badge endpoints for package versions and CI test results.
package main

import (
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/config"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/api"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

func main() {
	log := util.Logger.Sugar()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := api.NewFiberApp(cfg)

	log.Infof("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
