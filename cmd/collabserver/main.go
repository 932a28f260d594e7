// Command collabserver runs a pkg/collab.Hub: a WebSocket server that
// fans delta changes out to collaborating clients, rebasing each
// against whatever concurrent edits it missed. Adapted from the
// teacher's cmd/main.go top-level wiring (construct dependencies,
// start a server, block on a shutdown signal).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/deltaweave/deltaweave/pkg/collab"
	"github.com/deltaweave/deltaweave/pkg/embedhandlers"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML server config file (optional)")
	flag.Parse()

	cfg := collab.DefaultConfig()
	if *configPath != "" {
		loaded, err := collab.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("[collab] loading config: %v", err)
		}
		cfg = loaded
	}

	lookup := embedhandlers.NewDefaultRegistry().Lookup()
	hub := collab.NewHub(cfg, lookup)

	ctx, cancel := context.WithCancel(context.Background())

	if err := hub.Start(ctx); err != nil {
		log.Fatalf("[collab] starting hub: %v", err)
	}
	log.Printf("[collab] listening on %s (ws endpoint: /ws)", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[collab] shutting down")
	cancel()
	hub.Close()
}
