package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/db"
	"github.com/careerforward/career-quest/internal/parsing"
	"github.com/careerforward/career-quest/internal/server"
	"github.com/careerforward/career-quest/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing authentication, resume storage and scoring endpoints.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("port") {
			appConfig.Server.Port = servePort
		}
		return runServe(cmd.Context(), appConfig, appLogger)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	deps := server.Deps{
		Store:       database,
		JWT:         jwtConfig,
		Password:    passwordConfig,
		RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Logger:      logger,
	}
	if client != nil {
		defer client.Close()
		deps.Parser = parsing.NewResumeParser(client, logger)
	} else {
		logger.Warn("GEMINI_API_KEY not set, resume parsing endpoint disabled")
	}

	provider, closeMarket := newMarketProvider(ctx, cfg, client, logger)
	defer closeMarket()
	deps.Scorer = newEngine(cfg, provider, logger)

	srv, err := server.New(cfg.Server, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
