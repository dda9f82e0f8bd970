// Command relay-server exposes the Relay tool catalogue over Model
// Context Protocol stdio. The relay client spawns it as a subprocess.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/relay-ai/relay/internal/config"
	"github.com/relay-ai/relay/internal/server"
)

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "relay-server: config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "relay-server:", err)
		os.Exit(1)
	}
}

func configPath() string {
	if path := os.Getenv("RELAY_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "relay.toml"
	}
	return filepath.Join(home, ".relay", "config.toml")
}
