// AngelaMos | 2026
// main.go

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/rossoverde/supporters/internal/config"
	"github.com/rossoverde/supporters/internal/core"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	flag.Parse()

	direction := flag.Arg(0)
	if direction == "" {
		direction = "up"
	}

	if err := run(*configPath, *envFile, direction); err != nil {
		slog.Error("migration failed", "direction", direction, "error", err)
		os.Exit(1)
	}
}

func run(configPath, envFile, direction string) error {
	// A missing dotenv file is normal outside local development.
	_ = godotenv.Load(envFile)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := core.Migrate(cfg.Database.URL, direction); err != nil {
		return err
	}

	slog.Info("migrations applied", "direction", direction)
	return nil
}
