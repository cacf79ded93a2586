package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mwhitby/kinship/internal/config"
	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/genealogy"
	"github.com/mwhitby/kinship/internal/graphdb"
	"github.com/mwhitby/kinship/internal/kinship"
	"github.com/mwhitby/kinship/internal/logging"
	"github.com/mwhitby/kinship/internal/server"
	"github.com/mwhitby/kinship/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	people, graph, err := loadNetwork(cfg.Data)
	if err != nil {
		logger.Error("failed to load kinship network", "error", err)
		os.Exit(1)
	}
	logger.Info("kinship network loaded",
		"people", graph.Order(), "edges", graph.EdgeCount())

	graphClient := buildGraphClient(ctx, logger, cfg)
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	kinshipService := service.NewKinshipService(people, graph, cfg.Kinship.MaxLinks)
	apiHandlers := server.NewAPIHandlers(logger, kinshipService)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.GraphHealthService{Client: graphClient},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func loadNetwork(cfg config.DataConfig) (map[domain.PersonID]domain.Person, *kinship.Graph, error) {
	identityFile, err := os.Open(cfg.IdentityFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.IdentityFile, err)
	}
	defer identityFile.Close()

	people, err := genealogy.LoadIdentities(identityFile, cfg.Lenient)
	if err != nil {
		return nil, nil, fmt.Errorf("load identities: %w", err)
	}

	marriageFile, err := os.Open(cfg.MarriageFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.MarriageFile, err)
	}
	defer marriageFile.Close()

	marriages, err := genealogy.LoadMarriages(marriageFile, cfg.Lenient)
	if err != nil {
		return nil, nil, fmt.Errorf("load marriages: %w", err)
	}

	parents := make(map[domain.PersonID]kinship.Parentage, len(people))
	for id, p := range people {
		parents[id] = kinship.Parentage{Father: p.FatherID, Mother: p.MotherID}
	}

	graph, err := kinship.BuildGraph(parents, marriages.SpouseSets())
	if err != nil {
		return nil, nil, fmt.Errorf("build graph: %w", err)
	}
	return people, graph, nil
}

// buildGraphClient returns nil when no graph database is configured; the
// health probe then skips connectivity checks.
func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) graphdb.Client {
	if cfg.Graph.URI == "" {
		return nil
	}

	opts := graphdb.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graphdb.NewNeo4jClient(ctx, opts)
	if err != nil {
		logger.Warn("graph database unavailable", "error", err, "uri", cfg.Graph.URI)
		return nil
	}
	return client
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
