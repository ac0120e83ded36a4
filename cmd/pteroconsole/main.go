package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptero-tools/pterodactyl-go"
	"github.com/ptero-tools/pterodactyl-go/internal/console"
)

func main() {
	configPath := flag.String("config", "pteroconsole.yaml", "Path to the config file")
	panelURL := flag.String("panel", "", "Panel URL (overrides config)")
	apiKey := flag.String("key", "", "Client API key (overrides config)")
	server := flag.String("server", "", "Server identifier (overrides config)")
	flag.Parse()

	cfg, err := console.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *panelURL != "" {
		cfg.Panel.URL = *panelURL
	}
	if *apiKey != "" {
		cfg.Panel.APIKey = *apiKey
	}
	if *server != "" {
		cfg.Server = *server
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	client := pterodactyl.NewClient(cfg.Panel.URL, cfg.Panel.APIKey)
	srv := client.Server(cfg.Server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := console.New(srv, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	go console.Run(ctx, srv, p.Send)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
