package main

import (
	"github.com/joho/godotenv"
	"github.com/yaegerbomb42/famgame/config"
	"github.com/yaegerbomb42/famgame/logger"
	"github.com/yaegerbomb42/famgame/persistence"
	"github.com/yaegerbomb42/famgame/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect the game-record archive, if one is configured.
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	if db != nil {
		logger.Log.Info("Game record archive connected.")
		defer db.Close()
	}

	// Start Server
	gameServer := server.NewGameServer(cfg, db)
	logger.Log.Infof("Starting party server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
