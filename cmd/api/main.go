package main

import (
	"os"

	"github.com/lucasferr/cursada/internal/pkg/logger"
	"github.com/lucasferr/cursada/internal/server"
)

// @title Cursada API
// @version 1.0
// @description Course enrollment platform with prerequisite tracking

// @contact.name API Support
// @contact.email support@cursada.app

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
	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
