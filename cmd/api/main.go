package main

import (
	"os"

	"github.com/yigit/coursetracker/internal/pkg/logger"
	"github.com/yigit/coursetracker/internal/server"
)

// @title Course Tracker API
// @version 1.0
// @description Courses, terms, students and student term plans

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	// NewServer orchestrates config, logger, database, dependencies and router setup
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
