package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/carhive-dev/carhive/internal/config"
	"github.com/carhive-dev/carhive/internal/logger"
	"github.com/carhive-dev/carhive/internal/router"
	"github.com/carhive-dev/carhive/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	if err := cfg.Validate(); err != nil {
		// Serving without a signing key would issue forgeable tokens.
		log.Fatalf("invalid config: %v", err)
	}

	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	logger.Log.Info("server started", "addr", cfg.Public.Addr)
	log.Fatal(http.ListenAndServe(cfg.Public.Addr, r))
}
