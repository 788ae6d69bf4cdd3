// Command sketchd serves demo scenes rendered by the sketch library.
//
// Usage:
//
//	sketchd [-config sketchd.yaml]
//
// Routes:
//
//	GET /health/live
//	GET /demo.svg
//	GET /demo.png?backend=canvas|webgl|auto
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/config"
)

func main() {
	configPath := flag.String("config", "", "YAML or TOML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("sketchd: load config", "error", err)
			os.Exit(1)
		}
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	sketch.SetLogger(log)

	app := newApp(cfg, log)
	log.Info("sketchd: listening", "addr", cfg.Server.Addr, "backend", cfg.Backend)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Error("sketchd: server stopped", "error", err)
		os.Exit(1)
	}
}
