package main

import (
	"context"
	"log"

	"github.com/jdgomezdev/declaratax/internal/server"
	"github.com/jdgomezdev/declaratax/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine, the config falls back to env vars and flags.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
