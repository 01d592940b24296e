package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus, progress int) error
	SaveAnalysis(id uuid.UUID, status models.AnalysisStatus, result *models.AnalysisResult, errorMsg string) error
	IncrementRetry(id uuid.UUID) error
	FindPending(limit int) ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus, progress int) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_analysis_status": status,
			"ai_progress":        progress,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

// SaveAnalysis stores the analysis outcome. Finished statuses also set the
// progress to 100.
func (r *resumeRepository) SaveAnalysis(id uuid.UUID, status models.AnalysisStatus, analysis *models.AnalysisResult, errorMsg string) error {
	progress := models.ProgressStarted
	if status != models.StatusPending && status != models.StatusProcessing {
		progress = models.ProgressDone
	}

	// A struct update runs the ai_results JSON serializer.
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Select("ai_analysis_status", "ai_progress", "ai_results", "error_message", "updated_at").
		Updates(models.Resume{
			Status:       status,
			Progress:     progress,
			Results:      analysis,
			ErrorMessage: errorMsg,
			UpdatedAt:    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to save analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *resumeRepository) IncrementRetry(id uuid.UUID) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		UpdateColumn("retry_count", gorm.Expr("retry_count + ?", 1))

	if result.Error != nil {
		return fmt.Errorf("failed to increment retry count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *resumeRepository) FindPending(limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("ai_analysis_status = ?", models.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&resumes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending resumes: %w", err)
	}
	return resumes, nil
}
