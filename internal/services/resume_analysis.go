package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

// maxAnalysisRetries is how many times a résumé is re-analysed after the
// inference gateway was unavailable.
const maxAnalysisRetries = 1

type ResumeAnalysisService interface {
	// AnalyzeResume runs the full analysis of a stored résumé and saves the
	// outcome. retry reports that the caller should run it again later.
	AnalyzeResume(ctx context.Context, resumeID uuid.UUID) (retry bool, err error)
}

type resumeAnalysisService struct {
	repo       repositories.ResumeRepository
	analyzer   *analysis.Analyzer
	similarity SimilarityService
	log        *zap.Logger
}

// NewResumeAnalysisService builds the service. similarity may be nil when no
// vector index is configured.
func NewResumeAnalysisService(
	repo repositories.ResumeRepository,
	analyzer *analysis.Analyzer,
	similarity SimilarityService,
	log *zap.Logger,
) ResumeAnalysisService {
	return &resumeAnalysisService{
		repo:       repo,
		analyzer:   analyzer,
		similarity: similarity,
		log:        logger.OrNop(log),
	}
}

// AnalyzeResume implements ResumeAnalysisService.
func (s *resumeAnalysisService) AnalyzeResume(ctx context.Context, resumeID uuid.UUID) (bool, error) {
	resume, err := s.repo.FindByID(resumeID)
	if err != nil {
		return false, err
	}

	log := logger.WithFields(s.log, logger.ResumeFields(resumeID.String(), resume.FileType)...)
	if resume.Status == models.StatusCompleted || resume.Status == models.StatusFailed {
		log.Debug("resume already analysed", zap.String("status", string(resume.Status)))
		return false, nil
	}

	if err := s.repo.UpdateStatus(resumeID, models.StatusProcessing, models.ProgressStarted); err != nil {
		return false, fmt.Errorf("failed to update status: %w", err)
	}
	log.Info("analysis started", zap.Int("attempt", resume.RetryCount+1))

	result, runErr := s.analyzer.Run(ctx, resume.ExtractedText)
	status := StatusForOutcome(runErr)

	if err := s.repo.SaveAnalysis(resumeID, status, result, result.Error); err != nil {
		return false, fmt.Errorf("failed to save analysis: %w", err)
	}

	retry := status == models.StatusPartial &&
		analysis.IsTransientFailure(runErr) &&
		resume.RetryCount < maxAnalysisRetries
	if retry {
		if err := s.repo.IncrementRetry(resumeID); err != nil {
			log.Warn("failed to record retry", zap.Error(err))
			retry = false
		}
	}

	log.Info("analysis finished",
		zap.String("status", string(status)),
		zap.Bool("retry", retry),
		zap.String("error", result.Error),
	)

	if status != models.StatusFailed && s.similarity != nil {
		resume.Results = result
		if err := s.similarity.IndexResume(ctx, resume); err != nil && !errors.Is(err, ErrNothingToIndex) {
			log.Warn("failed to index resume", zap.Error(err))
		}
	}
	return retry, nil
}

// StatusForOutcome maps the error of an analysis run to the stored status.
func StatusForOutcome(err error) models.AnalysisStatus {
	switch {
	case err == nil:
		return models.StatusCompleted
	case errors.Is(err, analysis.ErrNoText), analysis.IsAuthFailure(err):
		return models.StatusFailed
	default:
		return models.StatusPartial
	}
}
