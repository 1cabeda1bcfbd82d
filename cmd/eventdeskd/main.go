package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"

	"eventdesk/internal/logger"
	"eventdesk/internal/server"
)

type daemonConfig struct {
	Addr string `envconfig:"ADDR" default:":8080"`
	Seed string `envconfig:"SEED"`
}

func main() {
	var cfg daemonConfig
	if err := envconfig.Process("eventdeskd", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, "Seed file to load on start and save on exit")
	flag.Parse()

	repo := server.NewRepo()
	if cfg.Seed != "" {
		n, err := repo.LoadSeed(cfg.Seed)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: loading seed: %v\n", err)
			os.Exit(1)
		}
		logger.Info("seed loaded", logger.Fields{"path": cfg.Seed, "events": n})
	}

	srv := server.New(repo)
	logger.Info("starting backend", logger.Fields{"addr": cfg.Addr})
	if err := srv.Start(cfg.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
