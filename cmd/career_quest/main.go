// Package main provides the career_quest CLI: scoring, resume parsing, the HTTP API and the scoring worker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/logger"
)

var (
	cfgFile string

	// Set by the root command's PersistentPreRunE.
	appConfig *config.Config
	appLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "career_quest",
	Short: "Career Quest resume and job-seeker scoring",
	Long: "Career Quest scores resumes on a 0-100 scale split into resume quality and job-seeker " +
		"fundamentals, with ranked recommendations, from the command line, an HTTP API or a queue worker.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is career_quest.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
}

// setup loads configuration and builds the logger for every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlag("debug", cmd.Root().PersistentFlags().Lookup("debug")); err != nil {
		return err
	}
	if err := v.BindPFlag("json", cmd.Root().PersistentFlags().Lookup("json")); err != nil {
		return err
	}

	cfg, err := config.LoadWith(v, cfgFile)
	if err != nil {
		return err
	}
	log, err := logger.New(v.GetBool("json"), v.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appConfig, appLogger = cfg, log
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if appLogger != nil {
		_ = appLogger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
