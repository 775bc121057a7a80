package main

import (
	"log"

	"leadsdesk/internal/config"
	"leadsdesk/internal/obs"
	"leadsdesk/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg := config.New()

	logger, err := obs.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
