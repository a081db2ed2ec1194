package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/i474232898/weather-mcp-server/internal/config"
	"github.com/i474232898/weather-mcp-server/internal/mcpserver"
	"github.com/i474232898/weather-mcp-server/internal/probe"
	"github.com/i474232898/weather-mcp-server/internal/tools"
	"github.com/i474232898/weather-mcp-server/internal/weather"
)

const serverVersion = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	client := weather.NewClient(httpClient, weather.ClientConfig{})
	adapter := tools.NewAdapter(client, cfg.HourlySampleSize)

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "weather",
		Version: serverVersion,
	}, nil)
	tools.Register(mcpServer, adapter)

	// Optional upstream reachability probe.
	upstreamProbe := probe.New(client, cfg.ProbeInterval)
	if err := upstreamProbe.Start(); err != nil {
		log.Fatalf("failed to start probe: %v", err)
	}
	defer upstreamProbe.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.New(cfg, mcpServer)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
