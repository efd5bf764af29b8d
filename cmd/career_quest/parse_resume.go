package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/observability"
	"github.com/careerforward/career-quest/internal/schemas"
	schemafiles "github.com/careerforward/career-quest/schemas"
)

type parseOptions struct {
	inFile  string
	outFile string
	verbose bool
}

var parseOpts parseOptions

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a resume document into ParsedResume JSON",
	Long:  "Extract text from a .txt/.pdf/.docx/.html resume and parse it with Gemini into JSON that validates against the parsed_resume schema.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runParseResume(cmd.Context(), appConfig, appLogger, parseOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	parseResumeCmd.Flags().StringVarP(&parseOpts.inFile, "in", "i", "", "Path to the resume document (required)")
	parseResumeCmd.Flags().StringVarP(&parseOpts.outFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseResumeCmd.Flags().BoolVarP(&parseOpts.verbose, "verbose", "v", false, "Print a summary of the parsed resume")
	_ = parseResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts parseOptions, stdout, stderr io.Writer) error {
	if isJSONFile(opts.inFile) {
		return fmt.Errorf("%s is already JSON", opts.inFile)
	}
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable)")
	}
	defer client.Close()

	resume, _, err := loadResume(ctx, opts.inFile, client, logger)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	if err := schemas.ValidateBytes(schemafiles.ParsedResume, out); err != nil {
		return fmt.Errorf("parsed resume failed schema validation: %w", err)
	}

	if opts.verbose {
		observability.NewPrinter(stderr).PrintParsedResume(resume)
	}

	if opts.outFile == "" {
		_, err := fmt.Fprintln(stdout, string(out))
		return err
	}
	if err := os.WriteFile(opts.outFile, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("parsed resume written", zap.String("path", opts.outFile))
	return nil
}
