package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/querygraph-inc/querygraph-engine/pkg/config"
	"github.com/querygraph-inc/querygraph-engine/pkg/export"
	"github.com/querygraph-inc/querygraph-engine/pkg/handlers"
	"github.com/querygraph-inc/querygraph-engine/pkg/loader"
	"github.com/querygraph-inc/querygraph-engine/pkg/mcp"
	"github.com/querygraph-inc/querygraph-engine/pkg/mcp/tools"
	"github.com/querygraph-inc/querygraph-engine/pkg/middleware"
	"github.com/querygraph-inc/querygraph-engine/pkg/resolver"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Build the catalog and relationship graph once; both are immutable
	// for the lifetime of the process and shared by every request.
	defs, err := loader.LoadFile(cfg.DefinitionsPath)
	if err != nil {
		logger.Fatal("Failed to load definitions", zap.String("path", cfg.DefinitionsPath), zap.Error(err))
	}
	cat, g, err := defs.Build(logger)
	if err != nil {
		logger.Fatal("Failed to build relationship graph", zap.Error(err))
	}

	policy := resolver.SelectAllEdges
	if cfg.AmbiguityPolicy == config.AmbiguityPolicyRequireContext {
		policy = resolver.SelectRequireContext
	}
	res := resolver.New(g, policy, logger)
	exporter := export.New(cat, g)

	if cfg.ExportPath != "" {
		if err := writeExport(exporter, cfg.ExportPath); err != nil {
			logger.Warn("Could not write graph export", zap.String("path", cfg.ExportPath), zap.Error(err))
		} else {
			logger.Info("Graph export written", zap.String("path", cfg.ExportPath))
		}
	}

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	resolveHandler := handlers.NewResolveHandler(res, logger)
	resolveHandler.RegisterRoutes(mux)

	graphHandler := handlers.NewGraphHandler(g, exporter, logger)
	graphHandler.RegisterRoutes(mux)

	mcpServer := mcp.NewServer("querygraph-engine", cfg.Version, logger)
	tools.RegisterGraphTools(mcpServer.MCP(), &tools.GraphToolDeps{
		Graph:    g,
		Resolver: res,
		Exporter: exporter,
		Logger:   logger,
	})
	mux.Handle("POST /mcp", mcpServer.NewStreamableHTTPServer())

	handler := middleware.RequestLogger(logger)(mux)

	stats := g.Stats()
	logger.Info("Starting querygraph-engine",
		zap.String("addr", cfg.Addr()),
		zap.String("version", cfg.Version),
		zap.Int("tables", stats.TotalTables),
		zap.Int("relationships", stats.TotalRelationships),
		zap.Bool("connected", stats.IsConnected))

	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds the zap logger for the configured environment and level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var logConfig zap.Config
	if cfg.Env == "local" {
		logConfig = zap.NewDevelopmentConfig()
	} else {
		logConfig = zap.NewProductionConfig()
	}
	logConfig.Level = zap.NewAtomicLevelAt(level)
	return logConfig.Build()
}

// writeExport writes the JSON graph export for external tooling.
func writeExport(exporter *export.Exporter, path string) error {
	data, err := json.MarshalIndent(exporter.Export(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
