package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

const resumeText = `Jane Doe
SKILLS
Golang, PostgreSQL
EXPERIENCE
Jan 2021 - Present Software Engineer, Acme Corp
• Reduced API latency by 35%
EDUCATION
State University Bachelor of Science in Computer Science 2016-2020`

type failingGateway struct {
	kind analysis.GatewayErrorKind
}

func (g failingGateway) Call(_ context.Context, model, _ string, _ time.Duration) (analysis.Response, error) {
	return nil, analysis.NewGatewayError(g.kind, model, errors.New("upstream said no"))
}

func pendingResume(text string) *models.Resume {
	return &models.Resume{
		ID:            uuid.New(),
		OriginalName:  "resume.txt",
		FileType:      FileTypeTXT,
		ExtractedText: text,
		Status:        models.StatusPending,
	}
}

func TestAnalyzeResumeCompletes(t *testing.T) {
	resume := pendingResume(resumeText)
	repo := newMemoryRepo(resume)
	index := newStubIndex()
	svc := NewResumeAnalysisService(repo, analysis.NewAnalyzer(), NewSimilarityService(index, &stubEmbedder{}, nil), nil)

	retry, err := svc.AnalyzeResume(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.False(t, retry)

	saved := repo.get(resume.ID)
	assert.Equal(t, models.StatusCompleted, saved.Status)
	assert.Equal(t, models.ProgressDone, saved.Progress)
	assert.Empty(t, saved.ErrorMessage)
	require.NotNil(t, saved.Results)
	assert.Equal(t, []string{"Golang", "PostgreSQL"}, saved.Results.Skills)
	assert.Equal(t, []models.AnalysisStatus{models.StatusProcessing, models.StatusCompleted}, repo.statuses())

	assert.NotEmpty(t, index.upserts[resume.ID.String()])
}

func TestAnalyzeResumeAuthFailureFails(t *testing.T) {
	resume := pendingResume(resumeText)
	repo := newMemoryRepo(resume)
	index := newStubIndex()
	analyzer := analysis.NewAnalyzer(analysis.WithGateway(failingGateway{kind: analysis.GatewayAuth}))
	svc := NewResumeAnalysisService(repo, analyzer, NewSimilarityService(index, &stubEmbedder{}, nil), nil)

	retry, err := svc.AnalyzeResume(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.False(t, retry)

	saved := repo.get(resume.ID)
	assert.Equal(t, models.StatusFailed, saved.Status)
	assert.Contains(t, saved.ErrorMessage, "credentials")
	require.NotNil(t, saved.Results)
	assert.False(t, saved.Results.RetryPossible)
	assert.Empty(t, index.upserts)
}

func TestAnalyzeResumeTransientFailureRetriesOnce(t *testing.T) {
	resume := pendingResume(resumeText)
	repo := newMemoryRepo(resume)
	analyzer := analysis.NewAnalyzer(analysis.WithGateway(failingGateway{kind: analysis.GatewayRateLimited}))
	svc := NewResumeAnalysisService(repo, analyzer, nil, nil)

	retry, err := svc.AnalyzeResume(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.True(t, retry)

	saved := repo.get(resume.ID)
	assert.Equal(t, models.StatusPartial, saved.Status)
	assert.Equal(t, 1, saved.RetryCount)
	require.NotNil(t, saved.Results)
	assert.True(t, saved.Results.RetryPossible)
	assert.Equal(t, []string{"Golang", "PostgreSQL"}, saved.Results.Skills)

	retry, err = svc.AnalyzeResume(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.False(t, retry)
	assert.Equal(t, 1, repo.get(resume.ID).RetryCount)
}

func TestAnalyzeResumeWithoutText(t *testing.T) {
	resume := pendingResume("   ")
	repo := newMemoryRepo(resume)
	svc := NewResumeAnalysisService(repo, analysis.NewAnalyzer(), nil, nil)

	retry, err := svc.AnalyzeResume(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.False(t, retry)

	saved := repo.get(resume.ID)
	assert.Equal(t, models.StatusFailed, saved.Status)
	assert.Equal(t, models.ErrorNoTextToAnalyze, saved.ErrorMessage)
}

func TestAnalyzeResumeSkipsFinished(t *testing.T) {
	resume := pendingResume(resumeText)
	resume.Status = models.StatusCompleted
	repo := newMemoryRepo(resume)
	svc := NewResumeAnalysisService(repo, analysis.NewAnalyzer(), nil, nil)

	retry, err := svc.AnalyzeResume(context.Background(), resume.ID)
	require.NoError(t, err)
	assert.False(t, retry)
	assert.Empty(t, repo.statuses())
}

func TestAnalyzeResumeUnknownID(t *testing.T) {
	svc := NewResumeAnalysisService(newMemoryRepo(), analysis.NewAnalyzer(), nil, nil)

	_, err := svc.AnalyzeResume(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrResumeNotFound)
}

func TestStatusForOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.AnalysisStatus
	}{
		{"success", nil, models.StatusCompleted},
		{"no text", analysis.ErrNoText, models.StatusFailed},
		{"auth", analysis.NewGatewayError(analysis.GatewayAuth, analysis.ModelSkills, errors.New("401")), models.StatusFailed},
		{"timeout", analysis.NewGatewayError(analysis.GatewayTimeout, analysis.ModelSkills, errors.New("slow")), models.StatusPartial},
		{"category", analysis.ErrCategoryFailed, models.StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForOutcome(tt.err))
		})
	}
}
