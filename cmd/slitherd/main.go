// Command slitherd runs the authoritative room server. It is a thin
// process wrapper: flag/env parsing and wiring only, no game logic — that
// lives in the root package.
package main

import (
	"flag"
	"log"

	slither "slither-rooms"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional config file (yaml/json/toml/env), overrides defaults")
		listenAddr = flag.String("listen", "", "override listen address, e.g. :8765")
		weights    = flag.String("weights", "", "optional bot policy weights JSON file")
	)
	flag.Parse()

	cfg, err := slither.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *weights != "" {
		cfg.WeightsPath = *weights
	}

	srv := slither.NewServer(cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
