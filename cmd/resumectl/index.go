package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func newIndexCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index <files...>",
		Short: "Add résumé files to the similarity index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.setup()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if cfg.Qdrant.URL == "" || cfg.Gemini.APIKey == "" {
				return errors.New("QDRANT_URL and GEMINI_API_KEY are required for indexing")
			}

			ctx := cmd.Context()
			gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log.Named("gemini"))
			if err != nil {
				return err
			}
			index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log.Named("qdrant"))
			if err != nil {
				return err
			}
			if err := index.InitCollection(ctx); err != nil {
				return err
			}
			similarity := services.NewSimilarityService(index, gemini, log.Named("similarity"))
			parser := services.NewDocumentParser()

			failed := 0
			for _, path := range args {
				resume, err := resumeFromFile(parser, path)
				if err == nil {
					err = similarity.IndexResume(ctx, resume)
				}
				if err != nil {
					failed++
					log.Error("indexing failed", zap.String("file", path), zap.Error(err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", resume.ID, path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to index", failed, len(args))
			}
			return nil
		},
	}
}

// resumeFromFile reads a résumé file. The ID is derived from the absolute
// path so indexing the same file again replaces its points.
func resumeFromFile(parser services.DocumentParser, path string) (*models.Resume, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	text, err := parser.ExtractFile(abs)
	if err != nil {
		return nil, err
	}
	fileType, _ := services.FileTypeOf(abs)

	return &models.Resume{
		ID:            uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs))),
		OriginalName:  filepath.Base(abs),
		FileType:      fileType,
		ExtractedText: text,
	}, nil
}
