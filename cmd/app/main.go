package main

import (
	"flag"
	"log"
	"os"

	"AstroEngine/internal/di"
	"AstroEngine/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s ephemeris=%s", cfg.Environment, cfg.Ephemeris.Source)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if cfg.Archive.Enabled {
		log.Printf("clickhouse: connected and schema ready - db: %s", cfg.Archive.Database)
	}
	if cfg.Events.Enabled {
		log.Printf("kafka: connected brokers=%v topic=%s", cfg.Events.Brokers, cfg.Events.Topic)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
