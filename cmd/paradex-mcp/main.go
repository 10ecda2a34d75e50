package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sv/mcp-paradex-go/api"
	"github.com/sv/mcp-paradex-go/internal/config"
	"github.com/sv/mcp-paradex-go/pkg/ops"
	"github.com/sv/mcp-paradex-go/pkg/paradex"
)

var (
	cfgFile   string
	transport string
	logger    *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "paradex-mcp",
		Short: "MCP server for the Paradex exchange API",
		Long:  `Exposes Paradex market data, account state and order management as typed MCP tools and resources`,
		Run:   runServer,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&transport, "transport", "", "transport to serve on: stdio or sse")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	// stdout carries the protocol when serving stdio.
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Error("Invalid log level, using INFO")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	}

	env, err := cfg.Paradex.Env()
	if err != nil {
		logger.WithError(err).Fatal("Invalid environment")
	}

	provider := paradex.NewProvider(paradex.Options{
		Environment:       env,
		AccountAddress:    cfg.Paradex.AccountAddress,
		PrivateKey:        cfg.Paradex.PrivateKeyPEM,
		Logger:            logger,
		RequestsPerSecond: cfg.Paradex.RequestsPerSecond,
	})

	registry := ops.New(ops.NewParadexSource(provider), logger)
	srv := api.NewServer(cfg.Server.Name, registry, logger, cfg.Server.Port)

	mode := cfg.Server.Transport
	if transport != "" {
		mode = transport
	}

	logger.WithFields(logrus.Fields{
		"environment":   cfg.Paradex.Environment,
		"transport":     mode,
		"authenticated": cfg.Paradex.Authenticated(),
	}).Info("Starting Paradex MCP server")

	switch mode {
	case "", "stdio":
		err = srv.ServeStdio()
	case "sse":
		err = srv.ServeSSE()
	default:
		logger.Fatalf("Unknown transport %q, want stdio or sse", mode)
	}
	if err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}
