package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func TestIndexResumeEmbedsEveryChunk(t *testing.T) {
	index := newStubIndex()
	embedder := &stubEmbedder{}
	svc := NewSimilarityService(index, embedder, nil)
	resume := pendingResume(resumeText)

	require.NoError(t, svc.IndexResume(context.Background(), resume))

	chunks := index.upserts[resume.ID.String()]
	require.NotEmpty(t, chunks)
	assert.Equal(t, chunks, embedder.inputs)
}

func TestIndexResumeWithoutText(t *testing.T) {
	svc := NewSimilarityService(newStubIndex(), &stubEmbedder{}, nil)

	err := svc.IndexResume(context.Background(), pendingResume(""))
	assert.ErrorIs(t, err, ErrNothingToIndex)
}

func TestIndexResumeEmbeddingError(t *testing.T) {
	index := newStubIndex()
	svc := NewSimilarityService(index, &stubEmbedder{err: errors.New("quota")}, nil)

	err := svc.IndexResume(context.Background(), pendingResume(resumeText))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
	assert.Empty(t, index.upserts)
}

func TestFindSimilarExcludesItself(t *testing.T) {
	index := newStubIndex()
	index.hits = []SearchResult{
		{ResumeID: "a", OriginalName: "a.pdf", Score: 0.9, Text: "Go   developer\nKubernetes"},
		{ResumeID: "a", OriginalName: "a.pdf", Score: 0.8, Text: "other chunk"},
		{ResumeID: "b", OriginalName: "b.docx", Score: 0.7, Text: strings.Repeat("x", 300)},
	}
	embedder := &stubEmbedder{}
	svc := NewSimilarityService(index, embedder, nil)

	resume := pendingResume(resumeText)
	resume.Results = &models.AnalysisResult{
		Skills: []string{"Golang", "PostgreSQL"},
		Experience: models.ExperienceBundle{
			DisplaySections: map[string][]models.ExperienceEntry{
				models.DisplayKeyWork: {{Title: "Software Engineer", Company: "Acme Corp"}},
			},
		},
		Education: models.EducationRecord{Degrees: []string{"Bachelor of Science"}},
	}

	matches, err := svc.FindSimilar(context.Background(), resume, 0)
	require.NoError(t, err)

	assert.Equal(t, resume.ID.String(), index.excluded)
	assert.Equal(t, defaultSimilarLimit, index.limit)
	assert.Equal(t, []string{"Skills: Golang, PostgreSQL\nSoftware Engineer Acme Corp\nBachelor of Science"}, embedder.inputs)

	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ResumeID)
	assert.Equal(t, "Go developer Kubernetes", matches[0].Excerpt)
	assert.Equal(t, "b", matches[1].ResumeID)
	assert.Len(t, []rune(matches[1].Excerpt), similarExcerptRunes+3)
}

func TestFindSimilarFallsBackToText(t *testing.T) {
	embedder := &stubEmbedder{}
	svc := NewSimilarityService(newStubIndex(), embedder, nil)

	_, err := svc.FindSimilar(context.Background(), pendingResume("Jane Doe\nGo developer"), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe\nGo developer"}, embedder.inputs)

	_, err = svc.FindSimilar(context.Background(), pendingResume(" "), 3)
	assert.ErrorIs(t, err, ErrNothingToIndex)
}

func TestRemoveResume(t *testing.T) {
	index := newStubIndex()
	svc := NewSimilarityService(index, &stubEmbedder{}, nil)
	resume := &models.Resume{ID: uuid.New()}

	require.NoError(t, svc.RemoveResume(context.Background(), resume))
	assert.Equal(t, []string{resume.ID.String()}, index.deleted)
}

func TestClampSimilarLimit(t *testing.T) {
	assert.Equal(t, defaultSimilarLimit, ClampSimilarLimit(-1))
	assert.Equal(t, 7, ClampSimilarLimit(7))
	assert.Equal(t, maxSimilarLimit, ClampSimilarLimit(500))
}

func TestBestPerResume(t *testing.T) {
	hits := []SearchResult{
		{ResumeID: "a", Score: 0.9},
		{ResumeID: "", Score: 0.85},
		{ResumeID: "b", Score: 0.8},
		{ResumeID: "a", Score: 0.7},
		{ResumeID: "c", Score: 0.6},
	}

	best := BestPerResume(hits, 2)
	require.Len(t, best, 2)
	assert.Equal(t, "a", best[0].ResumeID)
	assert.Equal(t, "b", best[1].ResumeID)

	assert.Len(t, BestPerResume(hits, 10), 3)
}

func TestChunkPointIDIsStable(t *testing.T) {
	assert.Equal(t, chunkPointID("r1", 0), chunkPointID("r1", 0))
	assert.NotEqual(t, chunkPointID("r1", 0), chunkPointID("r1", 1))
	_, err := uuid.Parse(chunkPointID("r1", 0))
	assert.NoError(t, err)
}
