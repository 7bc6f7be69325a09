// Command lc-api serves the FITS-to-CSV export pipeline as asynchronous
// jobs over HTTP.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/kelseyhightower/envconfig"

	_ "lightcurve-export/docs"
	"lightcurve-export/internal/api"
	"lightcurve-export/internal/api/handler"
	"lightcurve-export/internal/store"
	"lightcurve-export/pkg/utils"
)

// Config is read from LC_* environment variables.
type Config struct {
	Addr      string `envconfig:"ADDR" default:":8080"`
	DBPath    string `envconfig:"DB_PATH" default:"exports.db"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"exports"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("LC", &cfg); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := store.InitDB(cfg.DBPath); err != nil {
		slog.Error("cannot open job database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	outputs := utils.NewOutputManager(cfg.OutputDir)
	if err := outputs.EnsureOutputDirExists(); err != nil {
		slog.Error("cannot create output directory", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}

	r := api.NewRouter(handler.New(outputs))

	slog.Info("lc-api listening", "addr", cfg.Addr, "db", cfg.DBPath, "outputs", cfg.OutputDir)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
