package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/llm"
	"github.com/careerforward/career-quest/internal/observability"
	"github.com/careerforward/career-quest/internal/parsing"
	"github.com/careerforward/career-quest/internal/schemas"
	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
	schemafiles "github.com/careerforward/career-quest/schemas"
)

type scoreOptions struct {
	resumeFile  string
	rawTextFile string
	targetRole  string
	location    string
	industry    string
	outFile     string
	verbose     bool
}

var scoreOpts scoreOptions

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume",
	Long: "Score a resume given as ParsedResume JSON, or as a .txt/.pdf/.docx/.html document that is " +
		"parsed with Gemini first. Prints the ScoreResult JSON.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScore(cmd.Context(), appConfig, appLogger, scoreOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	f := scoreCmd.Flags()
	f.StringVarP(&scoreOpts.resumeFile, "resume", "r", "", "Path to ParsedResume JSON or a resume document (required)")
	f.StringVar(&scoreOpts.rawTextFile, "raw-text", "", "Path to the resume's original text, used for spelling and length")
	f.StringVar(&scoreOpts.targetRole, "target-role", "", "Role the candidate is targeting")
	f.StringVar(&scoreOpts.location, "location", "", "Location for market demand")
	f.StringVar(&scoreOpts.industry, "industry", "", "Industry for market demand")
	f.StringVarP(&scoreOpts.outFile, "out", "o", "", "Write the ScoreResult JSON here instead of stdout")
	f.BoolVarP(&scoreOpts.verbose, "verbose", "v", false, "Print a score breakdown and top recommendations")
	_ = scoreCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts scoreOptions, stdout, stderr io.Writer) error {
	var client llm.Client
	if !isJSONFile(opts.resumeFile) || cfg.Market.UseLLM {
		c, err := newLLMClient(ctx, cfg)
		if err != nil {
			return err
		}
		if c != nil {
			client = c
			defer client.Close()
		}
	}

	resume, rawText, err := loadResume(ctx, opts.resumeFile, client, logger)
	if err != nil {
		return err
	}
	if opts.rawTextFile != "" {
		data, err := os.ReadFile(opts.rawTextFile)
		if err != nil {
			return fmt.Errorf("failed to read raw text file: %w", err)
		}
		rawText = string(data)
	}

	provider, closeMarket := newMarketProvider(ctx, cfg, client, logger)
	defer closeMarket()

	result, err := newEngine(cfg, provider, logger).Calculate(ctx, resume, scoring.Request{
		RawText:    rawText,
		TargetRole: opts.targetRole,
		Location:   opts.location,
		Industry:   opts.industry,
	})
	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}
	if err := schemas.ValidateBytes(schemafiles.ScoreResult, out); err != nil {
		return fmt.Errorf("score result failed schema validation: %w", err)
	}

	if opts.verbose {
		observability.NewPrinter(stderr).PrintScoreResult(result)
	}

	if opts.outFile == "" {
		_, err := fmt.Fprintln(stdout, string(out))
		return err
	}
	if err := os.WriteFile(opts.outFile, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("score written", zap.String("path", opts.outFile), zap.Int("total_score", result.TotalScore))
	return nil
}

func isJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// loadResume reads ParsedResume JSON, or extracts and parses a document. The document text is returned as raw text.
func loadResume(ctx context.Context, path string, client llm.Client, logger *zap.Logger) (*types.ParsedResume, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read resume: %w", err)
	}

	if isJSONFile(path) {
		if err := schemas.ValidateBytes(schemafiles.ParsedResume, data); err != nil {
			return nil, "", fmt.Errorf("resume %s is not a valid ParsedResume: %w", path, err)
		}
		var resume types.ParsedResume
		if err := json.Unmarshal(data, &resume); err != nil {
			return nil, "", fmt.Errorf("failed to decode resume: %w", err)
		}
		return &resume, "", nil
	}

	mime, err := parsing.MimeFromFilename(path)
	if err != nil {
		return nil, "", err
	}
	text, err := parsing.ExtractText(mime, data)
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", fmt.Errorf("GEMINI_API_KEY is required to parse %s documents", filepath.Ext(path))
	}
	resume, err := parsing.NewResumeParser(client, logger).Parse(ctx, text)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse resume: %w", err)
	}
	return resume, text, nil
}
