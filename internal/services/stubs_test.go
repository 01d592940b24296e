package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type memoryRepo struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*models.Resume
	history []models.AnalysisStatus
}

func newMemoryRepo(resumes ...*models.Resume) *memoryRepo {
	r := &memoryRepo{resumes: make(map[uuid.UUID]*models.Resume)}
	for _, resume := range resumes {
		r.resumes[resume.ID] = resume
	}
	return r
}

func (r *memoryRepo) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	r.resumes[resume.ID] = resume
	return nil
}

func (r *memoryRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return nil, repositories.ErrResumeNotFound
	}
	copied := *resume
	return &copied, nil
}

func (r *memoryRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return repositories.ErrResumeNotFound
	}
	resume.Status = status
	resume.Progress = progress
	r.history = append(r.history, status)
	return nil
}

func (r *memoryRepo) SaveAnalysis(id uuid.UUID, status models.AnalysisStatus, result *models.AnalysisResult, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return repositories.ErrResumeNotFound
	}
	resume.Status = status
	resume.Progress = models.ProgressDone
	resume.Results = result
	resume.ErrorMessage = errorMsg
	r.history = append(r.history, status)
	return nil
}

func (r *memoryRepo) IncrementRetry(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return repositories.ErrResumeNotFound
	}
	resume.RetryCount++
	return nil
}

func (r *memoryRepo) FindPending(limit int) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, resume := range r.resumes {
		if resume.Status == models.StatusPending && len(out) < limit {
			out = append(out, *resume)
		}
	}
	return out, nil
}

func (r *memoryRepo) get(id uuid.UUID) models.Resume {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.resumes[id]
}

func (r *memoryRepo) statuses() []models.AnalysisStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AnalysisStatus(nil), r.history...)
}

type stubEmbedder struct {
	mu     sync.Mutex
	inputs []string
	err    error
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = append(s.inputs, text)
	if s.err != nil {
		return nil, s.err
	}
	return []float32{float32(len(text)), 1}, nil
}

type stubIndex struct {
	mu       sync.Mutex
	upserts  map[string][]string
	deleted  []string
	hits     []SearchResult
	excluded string
	limit    int
}

func newStubIndex() *stubIndex {
	return &stubIndex{upserts: make(map[string][]string)}
}

func (s *stubIndex) InitCollection(context.Context) error { return nil }

func (s *stubIndex) UpsertResume(_ context.Context, resumeID, _ string, chunks []string, _ [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts[resumeID] = chunks
	return nil
}

func (s *stubIndex) SearchSimilar(_ context.Context, _ []float32, excludeResumeID string, limit int) ([]SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excluded = excludeResumeID
	s.limit = limit
	return BestPerResume(s.hits, limit), nil
}

func (s *stubIndex) DeleteResume(_ context.Context, resumeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, resumeID)
	return nil
}
