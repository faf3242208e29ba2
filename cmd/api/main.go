package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/profrate/profrate/internal/pkg/logger"
	"github.com/profrate/profrate/internal/server"
)

// @title ProfRate API
// @version 1.0
// @description API for the professor rating service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present, real env vars still take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not load .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
