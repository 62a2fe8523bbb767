package cmd

import (
	"context"
	"fmt"

	clustercfg "dns-fleet/core/cluster"
	"dns-fleet/core/config"
	"dns-fleet/core/database"
	"dns-fleet/core/metrics"
	"dns-fleet/core/storage"
	"dns-fleet/feature/cluster"
	"dns-fleet/feature/nodes"

	"go.uber.org/zap"
)

// services holds the wired application services shared by every command.
type services struct {
	nodes   *nodes.Feature
	cluster *cluster.Service
	metrics *metrics.Metrics
}

// buildServices wires the registry, node clients, metrics and the archive.
func buildServices(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*services, error) {
	seed, err := clustercfg.ParseNodes(cfg.Cluster.Nodes)
	if err != nil {
		return nil, fmt.Errorf("parse CLUSTER_NODES: %w", err)
	}

	store, err := openStore(ctx, cfg, logg)
	if err != nil {
		return nil, err
	}

	registry := nodes.NewFeature(store, logg)
	added, err := registry.Service().Seed(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("seed node registry: %w", err)
	}
	logg.Info("Node registry ready",
		zap.String("backend", cfg.Cluster.Registry),
		zap.Int("seeded", added))

	var archive *cluster.Archive
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			// Archiving is optional; the views keep working without it.
			logg.Warn("Report archive unavailable", zap.Error(err))
		} else {
			archive = cluster.NewArchive(client, cfg.Storage.Bucket, cfg.Cluster.ArchivePrefix)
		}
	}

	m := metrics.New()
	pool := cluster.NewClientPool(cfg.Cluster.NodeOptions(), logg)
	svc := cluster.NewService(registry.Service().Store(), pool.Source, cfg.Cluster, logg, m, archive)
	registry.Service().OnChange(svc.Invalidate)

	return &services{nodes: registry, cluster: svc, metrics: m}, nil
}

func openStore(ctx context.Context, cfg *config.Config, logg *zap.Logger) (nodes.Store, error) {
	if cfg.Cluster.Registry != clustercfg.RegistryDatabase {
		return nodes.NewMemoryStore(nil), nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	store := nodes.NewGormStore(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	logg.Info("Connected to registry database", zap.String("driver", cfg.Database.Driver))
	return store, nil
}
