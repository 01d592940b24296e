package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusPending    AnalysisStatus = "pending"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusPartial    AnalysisStatus = "partial"
	StatusFailed     AnalysisStatus = "failed"
)

const (
	ProgressQueued  = 0
	ProgressStarted = 10
	ProgressDone    = 100
)

type Resume struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OriginalName  string          `gorm:"type:text" json:"original_name"`
	StoragePath   string          `gorm:"type:text" json:"storage_path"`
	FileType      string          `gorm:"type:text" json:"file_type"`
	FileSize      int64           `json:"file_size"`
	ExtractedText string          `gorm:"type:text" json:"extracted_text"`
	Status        AnalysisStatus  `gorm:"column:ai_analysis_status;not null;default:'pending'" json:"ai_analysis_status"`
	Progress      int             `gorm:"column:ai_progress;not null;default:0" json:"ai_progress"`
	Results       *AnalysisResult `gorm:"column:ai_results;type:jsonb;serializer:json" json:"ai_results,omitempty"`
	ErrorMessage  string          `gorm:"type:text" json:"error_message,omitempty"`
	RetryCount    int             `gorm:"not null;default:0" json:"retry_count"`
	CreatedAt     time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}

// Finished reports whether no further analysis will run for the résumé.
func (r *Resume) Finished() bool {
	switch r.Status {
	case StatusCompleted, StatusPartial, StatusFailed:
		return true
	default:
		return false
	}
}
