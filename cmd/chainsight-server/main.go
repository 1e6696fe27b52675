package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainsight/chainsight/pkg/api"
	"github.com/chainsight/chainsight/pkg/auth"
	"github.com/chainsight/chainsight/pkg/dataset"
	"github.com/chainsight/chainsight/pkg/graph"
	"github.com/chainsight/chainsight/pkg/graphql"
	"github.com/chainsight/chainsight/pkg/impact"
	"github.com/chainsight/chainsight/pkg/logging"
	"github.com/chainsight/chainsight/pkg/metrics"
	"github.com/chainsight/chainsight/pkg/session"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	datasetPath := flag.String("dataset", "", "Dataset file (.json or .csnap), overrides config")
	port := flag.Int("port", 0, "HTTP port, overrides config")
	flag.Parse()

	logger := logging.Default().With(logging.Component("server"))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("load config", logging.Error(err))
		os.Exit(1)
	}
	if *datasetPath != "" {
		cfg.Dataset = *datasetPath
	}
	if *port != 0 {
		cfg.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		logger.Error("load dataset", logging.Error(err))
		os.Exit(1)
	}

	registry := metrics.Default()

	buildStart := time.Now()
	ix, warnings := graph.BuildIndex(g)
	registry.RecordIndexBuild(time.Since(buildStart), ix.NodeCount(), ix.EdgeCount(), len(warnings))
	for _, warning := range warnings {
		logger.Warn("dataset warning",
			logging.String("edge", warning.EdgeID),
			logging.NodeID(warning.NodeID),
			logging.String("reason", warning.Reason))
	}
	logger.Info("index built",
		logging.Int("nodes", ix.NodeCount()),
		logging.Int("edges", ix.EdgeCount()),
		logging.Int("warnings", len(warnings)))

	opts := impact.DefaultTraceOptions()
	if cfg.Trace.MaxDepth > 0 {
		opts.MaxDepth = cfg.Trace.MaxDepth
	}
	opts.WeightThreshold = cfg.Trace.WeightThreshold

	sessions := session.NewManager(ix, opts)
	defer sessions.Close()

	apiCfg := api.Config{
		Port:     cfg.Port,
		Version:  version,
		Registry: registry,
		Logger:   logger,
	}

	if cfg.Auth.Secret != "" {
		jwtMgr, err := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenDuration)
		if err != nil {
			logger.Error("configure auth", logging.Error(err))
			os.Exit(1)
		}
		apiCfg.JWT = jwtMgr
		apiCfg.APIKeys = auth.NewAPIKeyStore()
	} else {
		logger.Warn("auth secret not set, running without authentication")
	}

	schema, err := graphql.GenerateSchema(ix)
	if err != nil {
		logger.Warn("graphql schema unavailable", logging.Error(err))
	} else {
		apiCfg.GraphQL = graphql.NewHandler(schema)
	}

	server := api.NewServer(ix, sessions, apiCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", logging.Error(err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}
}

// loadDataset resolves the dataset in precedence order: S3 object,
// Postgres catalog entry, then local file.
func loadDataset(ctx context.Context, cfg Config, logger logging.Logger) (*graph.Graph, error) {
	if cfg.S3.Bucket != "" && cfg.S3.Key != "" {
		logger.Info("fetching dataset from s3",
			logging.String("bucket", cfg.S3.Bucket),
			logging.String("key", cfg.S3.Key))
		src, err := dataset.NewS3Source(ctx, cfg.S3.Bucket, dataset.S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return src.Fetch(ctx, cfg.S3.Key)
	}

	if cfg.Postgres.URL != "" {
		logger.Info("fetching dataset from postgres", logging.Dataset(cfg.Dataset))
		store, err := dataset.NewPGStore(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(ctx, cfg.Dataset)
	}

	logger.Info("loading dataset from file", logging.Dataset(cfg.Dataset))
	return dataset.LoadFile(cfg.Dataset)
}
