package main

import (
	"flag"
	"log"

	"Kreate/internal/config"
	"Kreate/internal/input"
	"Kreate/internal/net"
	"Kreate/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	gestures := flag.Bool("gestures", false, "accept tap/swipe gestures from e-reader pages over websocket")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *gestures {
		cfg.Gestures.Enabled = true
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
	}

	// The gesture capability is decided once, here.
	var source input.GestureSource
	if cfg.Gestures.Enabled {
		log.Println("Starting with gesture bridge")
		source = net.NewBridge(cfg.Gestures.Port, cfg.Gestures.Path, cfg.Gestures.Advertise)
	}

	if err := ui.RunApp(cfg, source); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
