package api

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/sv/mcp-paradex-go/pkg/ops"
)

// Version is the protocol server version reported to clients.
const Version = "0.1.0"

// Server hosts the operation registry over an MCP transport.
type Server struct {
	mcp    *server.MCPServer
	logger *logrus.Logger
	port   int
}

func NewServer(name string, registry *ops.Registry, logger *logrus.Logger, port int) *Server {
	s := server.NewMCPServer(name, Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)
	registry.Attach(s)
	return &Server{
		mcp:    s,
		logger: logger,
		port:   port,
	}
}

// ServeStdio blocks serving the protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("Serving over stdio")
	return server.ServeStdio(s.mcp)
}

// ServeSSE blocks serving the protocol over HTTP server-sent events.
func (s *Server) ServeSSE() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Infof("Serving SSE on %s", addr)
	sse := server.NewSSEServer(s.mcp)
	return sse.Start(addr)
}
