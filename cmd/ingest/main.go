package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwhitby/kinship/internal/config"
	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/genealogy"
	"github.com/mwhitby/kinship/internal/graphdb"
	"github.com/mwhitby/kinship/internal/logging"
)

func main() {
	var (
		identitiesPath = flag.String("identities", "", "Path to the identity CSV (overrides DATA_IDENTITY_FILE)")
		marriagesPath  = flag.String("marriages", "", "Path to the marriage CSV (overrides DATA_MARRIAGE_FILE)")
		workers        = flag.Int("workers", 0, "Number of concurrent workers for publishing (overrides KINSHIP_WORKERS)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *identitiesPath != "" {
		cfg.Data.IdentityFile = *identitiesPath
	}
	if *marriagesPath != "" {
		cfg.Data.MarriageFile = *marriagesPath
	}
	if *workers > 0 {
		cfg.Kinship.Workers = *workers
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	people, err := loadIdentities(cfg.Data)
	if err != nil {
		logger.Error("failed to load identities", "error", err, "path", cfg.Data.IdentityFile)
		os.Exit(1)
	}
	if len(people) == 0 {
		logger.Error("identity file empty", "path", cfg.Data.IdentityFile)
		os.Exit(1)
	}

	marriages, err := loadMarriages(cfg.Data)
	if err != nil {
		logger.Error("failed to load marriages", "error", err, "path", cfg.Data.MarriageFile)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	publisher := graphdb.NewPublisher(graphClient, cfg.Kinship.Workers)

	start := time.Now()
	logger.Info("publishing kinship network",
		"people", len(people), "marriages", len(marriages.ByPair), "workers", cfg.Kinship.Workers)
	if err := publisher.PublishAll(ctx, people, marriages); err != nil {
		logger.Error("publishing failed", "error", err)
		os.Exit(1)
	}

	logger.Info("publishing complete",
		"duration", time.Since(start).String(), "people", len(people), "marriages", len(marriages.ByPair))
}

func loadIdentities(cfg config.DataConfig) (map[domain.PersonID]domain.Person, error) {
	file, err := os.Open(cfg.IdentityFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.IdentityFile, err)
	}
	defer file.Close()
	return genealogy.LoadIdentities(file, cfg.Lenient)
}

func loadMarriages(cfg config.DataConfig) (genealogy.MarriageSet, error) {
	file, err := os.Open(cfg.MarriageFile)
	if err != nil {
		return genealogy.MarriageSet{}, fmt.Errorf("open %s: %w", cfg.MarriageFile, err)
	}
	defer file.Close()
	return genealogy.LoadMarriages(file, cfg.Lenient)
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graphdb.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for publishing")
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
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	logger.Info("connected to graph database", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
