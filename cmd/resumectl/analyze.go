package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		text  string
		local bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyse a PDF, DOCX or TXT résumé and print the result as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (text != "") {
				return errors.New("pass either a file or --text")
			}

			cfg, log, err := root.setup()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if len(args) == 1 {
				text, err = services.NewDocumentParser().ExtractFile(args[0])
				if err != nil {
					return fmt.Errorf("reading %s: %w", args[0], err)
				}
			}

			analyzer, err := buildAnalyzer(cmd, cfg, log, local)
			if err != nil {
				return err
			}

			result := analyzer.Analyze(cmd.Context(), text)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "résumé text to analyse instead of a file")
	cmd.Flags().BoolVarP(&local, "local", "l", false, "use local heuristics only, never the inference gateway")
	return cmd
}

func buildAnalyzer(cmd *cobra.Command, cfg *config.Config, log *zap.Logger, local bool) (*analysis.Analyzer, error) {
	opts := []analysis.Option{
		analysis.WithTimeout(cfg.Gemini.Timeout),
		analysis.WithLogger(log.Named("analysis")),
	}
	if local || cfg.Gemini.APIKey == "" {
		log.Debug("inference gateway disabled")
		return analysis.NewAnalyzer(opts...), nil
	}

	gemini, err := services.NewGeminiService(cmd.Context(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log.Named("gemini"))
	if err != nil {
		return nil, err
	}
	gateway := services.NewGeminiGateway(gemini, cfg.Gemini.MinInterval, log.Named("gateway"))
	return analysis.NewAnalyzer(append(opts, analysis.WithGateway(gateway))...), nil
}
