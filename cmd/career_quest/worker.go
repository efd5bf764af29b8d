package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/db"
	"github.com/careerforward/career-quest/internal/parsing"
	"github.com/careerforward/career-quest/internal/storage"
	"github.com/careerforward/career-quest/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume score requests from RabbitMQ",
	Long: "Consume uploaded-resume score jobs from the score_requests queue: download from object storage, " +
		"extract, parse, score, store, and publish progress on the score_updates exchange.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWorker(cmd.Context(), appConfig, appLogger)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func checkWorkerConfig(cfg *config.Config) error {
	switch {
	case cfg.DatabaseURL == "":
		return fmt.Errorf("DATABASE_URL environment variable is required")
	case cfg.RabbitMQ.URL == "":
		return fmt.Errorf("RABBITMQ_URL environment variable is required")
	case cfg.Storage.Bucket == "":
		return fmt.Errorf("S3_BUCKET environment variable is required")
	case cfg.Gemini.APIKey == "":
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	return nil
}

func runWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := checkWorkerConfig(cfg); err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	objects, err := storage.NewS3(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	provider, closeMarket := newMarketProvider(ctx, cfg, client, logger)
	defer closeMarket()

	conn, closeConn, err := worker.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return err
	}
	defer func() { _ = closeConn() }()

	publisher, err := worker.NewPublisher(conn, cfg.RabbitMQ.Exchange)
	if err != nil {
		return err
	}
	defer publisher.Close()

	proc := worker.NewProcessor(
		objects,
		parsing.NewResumeParser(client, logger),
		newEngine(cfg, provider, logger),
		database,
		publisher,
		logger,
	)

	logger.Info("worker starting",
		zap.String("queue", cfg.RabbitMQ.Queue),
		zap.Int("consumers", cfg.RabbitMQ.Consumers),
		zap.Int("prefetch", cfg.RabbitMQ.Prefetch))
	return worker.NewPool(conn, proc, cfg.RabbitMQ, logger).Run(ctx)
}
