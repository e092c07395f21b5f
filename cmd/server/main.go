package main

import (
	"log/slog"
	"os"

	"github.com/reelsense/reelsense/config"
	"github.com/reelsense/reelsense/internal/analysis"
	"github.com/reelsense/reelsense/internal/logging"
	"github.com/reelsense/reelsense/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	analyzer := analysis.NewDefaultAnalyzer()
	router := server.NewRouter(analyzer, config.Aspects())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("[Server] Listening", slog.String("port", port))
	if err := router.Run(":" + port); err != nil {
		slog.Error("[Server] Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
