// Package mcpserver owns the protocol transport. The server is started
// through the single Run entry point, which performs all internal setup;
// no partially initialized handle is ever exposed.
package mcpserver

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/i474232898/weather-mcp-server/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server runs an MCP server over the configured transport.
type Server struct {
	cfg       *config.AppConfig
	mcpServer *mcp.Server
}

// New wraps the MCP server with transport configuration. Nothing listens
// until Run is called.
func New(cfg *config.AppConfig, mcpServer *mcp.Server) *Server {
	return &Server{cfg: cfg, mcpServer: mcpServer}
}

// Run starts the configured transport and blocks until the context is
// cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case config.TransportHTTP:
		return s.runHTTP(ctx)
	default:
		log.Printf("INFO: serving MCP over stdio")
		return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	}
}

func (s *Server) runHTTP(ctx context.Context) error {
	app := s.buildApp()

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO: serving MCP over HTTP on %s", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
		return err
	}
	return nil
}

// buildApp assembles the fiber app serving the health endpoint and the
// mounted MCP streamable HTTP handler.
func (s *Server) buildApp() *fiber.App {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	app := fiber.New(fiber.Config{
		AppName:               "weather-mcp-server",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-mcp-server",
		})
	})

	// The streamable HTTP transport speaks GET, POST and DELETE on one path.
	app.All("/mcp", adaptor.HTTPHandler(handler))

	return app
}
