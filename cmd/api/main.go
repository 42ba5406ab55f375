package main

import (
	"os"

	"github.com/yigit/lmsadmin/internal/pkg/logger"
	"github.com/yigit/lmsadmin/internal/server"
)

// @title LMS Admin API
// @version 1.0
// @description Course catalog, mentor buckets and student course mentor records for LMS administrators

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token; browsers may use the session cookie instead

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
