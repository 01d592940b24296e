package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	similarExcerptRunes = 200
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

var ErrNothingToIndex = errors.New("resume has no text to index")

type embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// SimilarityService indexes analysed résumés and finds the closest ones.
type SimilarityService interface {
	IndexResume(ctx context.Context, resume *models.Resume) error
	FindSimilar(ctx context.Context, resume *models.Resume, limit int) ([]models.SimilarResume, error)
	RemoveResume(ctx context.Context, resume *models.Resume) error
}

type similarityService struct {
	index    ResumeIndex
	embedder embedder
	chunker  TextChunker
	log      *zap.Logger
}

func NewSimilarityService(index ResumeIndex, embeddings embedder, log *zap.Logger) SimilarityService {
	return &similarityService{
		index:    index,
		embedder: embeddings,
		chunker:  NewTextChunker(),
		log:      logger.OrNop(log),
	}
}

// IndexResume implements SimilarityService.
func (s *similarityService) IndexResume(ctx context.Context, resume *models.Resume) error {
	chunks := s.chunker.ChunkText(resume.ExtractedText, defaultChunkRunes, defaultOverlapLines)
	if len(chunks) == 0 {
		return ErrNothingToIndex
	}

	embeddings := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := s.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		embeddings = append(embeddings, embedding)
	}

	id := resume.ID.String()
	if err := s.index.UpsertResume(ctx, id, resume.OriginalName, chunks, embeddings); err != nil {
		return err
	}

	s.log.Info("resume indexed", zap.String(logger.FieldResumeID, id), zap.Int("chunks", len(chunks)))
	return nil
}

// FindSimilar implements SimilarityService. The query is the résumé's skills
// and experience when it has been analysed, its leading text otherwise.
func (s *similarityService) FindSimilar(ctx context.Context, resume *models.Resume, limit int) ([]models.SimilarResume, error) {
	query := similarityQuery(resume)
	if query == "" {
		return nil, ErrNothingToIndex
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.index.SearchSimilar(ctx, embedding, resume.ID.String(), ClampSimilarLimit(limit))
	if err != nil {
		return nil, err
	}

	matches := make([]models.SimilarResume, 0, len(hits))
	for _, hit := range hits {
		matches = append(matches, models.SimilarResume{
			ResumeID:     hit.ResumeID,
			OriginalName: hit.OriginalName,
			Score:        hit.Score,
			Excerpt:      logger.TruncateForLog(analysis.CollapseWhitespace(hit.Text), similarExcerptRunes),
		})
	}
	return matches, nil
}

// RemoveResume implements SimilarityService.
func (s *similarityService) RemoveResume(ctx context.Context, resume *models.Resume) error {
	return s.index.DeleteResume(ctx, resume.ID.String())
}

func ClampSimilarLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultSimilarLimit
	case limit > maxSimilarLimit:
		return maxSimilarLimit
	default:
		return limit
	}
}

func similarityQuery(resume *models.Resume) string {
	if r := resume.Results; r != nil && len(r.Skills) > 0 {
		parts := []string{"Skills: " + strings.Join(r.Skills, ", ")}
		for _, key := range []string{models.DisplayKeyWork, models.DisplayKeyInternship, models.DisplayKeyProject} {
			for _, e := range r.Experience.DisplaySections[key] {
				parts = append(parts, e.Title+" "+e.Company)
			}
		}
		parts = append(parts, r.Education.Degrees...)
		return strings.Join(parts, "\n")
	}

	chunks := NewTextChunker().ChunkText(resume.ExtractedText, defaultChunkRunes, 0)
	if len(chunks) == 0 {
		return ""
	}
	return chunks[0]
}
