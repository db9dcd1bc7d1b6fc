package main

import (
	"billing-backend/internal/config"
	"billing-backend/internal/database"
	"billing-backend/internal/handlers"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		config.GetLogger().Warn("No .env file found")
	}

	cfg := config.Load()
	log := config.GetLogger()

	database.Connect(cfg.DBDSN)

	r := handlers.NewRouter(cfg)

	log.Info("Server starting on " + cfg.BaseURL)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
