package main

import (
	"log/slog"
	"os"

	"pollboard/internal/config"
	"pollboard/internal/db"
	"pollboard/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(conn); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	srv := server.New(conn, cfg)
	slog.Info("pollboard listening", "addr", cfg.ListenAddr)
	if err := srv.Router().Run(cfg.ListenAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
