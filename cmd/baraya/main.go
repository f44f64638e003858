package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/koswara-dev/BarayaApp-sub000/internal/app"
	"github.com/koswara-dev/BarayaApp-sub000/internal/config"
)

func main() {
	// Local development overrides; the file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
