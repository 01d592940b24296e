package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func TestAnalyzeWithoutGatewayUsesHeuristics(t *testing.T) {
	result, err := NewAnalyzer().Run(context.Background(), sampleResume)
	require.NoError(t, err)

	assert.Empty(t, result.Error)
	assert.False(t, result.RetryPossible)
	assert.Equal(t, []string{"Golang", "PostgreSQL", "Kubernetes"}, result.Skills)

	exp := result.Experience
	assert.True(t, exp.HasWork)
	assert.True(t, exp.HasInternship)
	assert.True(t, exp.HasProject)
	require.Len(t, exp.DisplaySections[models.DisplayKeyWork], 1)
	work := exp.DisplaySections[models.DisplayKeyWork][0]
	assert.Equal(t, "Software Engineer", work.Title)
	assert.Equal(t, "Reduced API latency by 35% Led migration to Kubernetes", work.Description)
	require.Len(t, exp.DisplaySections[models.DisplayKeyInternship], 1)
	assert.Equal(t, "Backend Intern", exp.DisplaySections[models.DisplayKeyInternship][0].Title)

	projects := exp.DisplaySections[models.DisplayKeyProject]
	require.Len(t, projects, 2)
	assert.Equal(t, "Task Tracker", projects[0].Title)
	assert.Equal(t, "Budget App", projects[1].Title)
	assert.Equal(t, "Northwind Bank", projects[1].Company)
	assert.Contains(t, projects[1].Description, "https://github.com/janedoe/budget")

	assert.Equal(t, []string{"State University"}, result.Education.Institutions)
	assert.GreaterOrEqual(t, result.QualityScore, 1.0)
	assert.LessOrEqual(t, result.QualityScore, 10.0)
	assert.Equal(t, []string{RecommendLeadership, RecommendTailor}, result.Recommendations)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := NewAnalyzer()
	assert.Equal(t, a.Analyze(context.Background(), sampleResume), a.Analyze(context.Background(), sampleResume))
}

func TestAnalyzeEmptyText(t *testing.T) {
	result, err := NewAnalyzer().Run(context.Background(), "  \n ")

	assert.ErrorIs(t, err, ErrNoText)
	assert.Equal(t, models.ErrorNoTextToAnalyze, result.Error)
	assert.NotNil(t, result.Skills)
	assert.NotNil(t, result.Recommendations)
	assert.Equal(t, models.DefaultQualityScore, result.QualityScore)
}

func TestAnalyzeStopsCallingGatewayAfterAuthFailure(t *testing.T) {
	gw := &stubGateway{err: NewGatewayError(GatewayAuth, "", errors.New("invalid api key"))}

	result, err := NewAnalyzer(WithGateway(gw)).Run(context.Background(), sampleResume)

	assert.True(t, IsAuthFailure(err))
	assert.Equal(t, []string{ModelSkills}, gw.calls)
	assert.Contains(t, result.Error, "rejected the credentials")
	assert.False(t, result.RetryPossible)
	assert.Contains(t, result.Skills, "Golang")
	assert.True(t, result.Experience.HasWork)
}

func TestAnalyzeTransientFailureFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gw := &stubGateway{err: NewGatewayError(GatewayRateLimited, "", errors.New("slow down"))}

	result, err := NewAnalyzer(WithGateway(gw), WithLogger(zap.New(core))).Run(context.Background(), sampleResume)

	assert.True(t, IsTransientFailure(err))
	assert.False(t, IsAuthFailure(err))
	assert.Len(t, gw.calls, 5)
	assert.True(t, result.RetryPossible)
	assert.Contains(t, result.Error, "local heuristics used")
	assert.Equal(t, 5, logs.FilterMessage("gateway call failed, using fallback").Len())
	assert.Equal(t, NewAnalyzer().Analyze(context.Background(), sampleResume).Skills, result.Skills)
}

func TestAnalyzeModelNotFoundIsSilent(t *testing.T) {
	gw := &stubGateway{err: NewGatewayError(GatewayNotFound, "", errors.New("no such model"))}

	result, err := NewAnalyzer(WithGateway(gw)).Run(context.Background(), sampleResume)

	require.NoError(t, err)
	assert.Empty(t, result.Error)
	assert.Len(t, gw.calls, 5)
}

func TestAnalyzeUsesGatewayResponses(t *testing.T) {
	gw := &stubGateway{responses: map[string]Response{
		ModelSkills: {"skills": []any{"Go", "go", "Rust"}},
		ModelExperience: {
			"work": []any{
				map[string]any{"title": "Engineer", "company": "Acme"},
				map[string]any{"title": "QA Intern", "company": "Beta"},
			},
			"internships": []any{},
			"projects":    []any{
				map[string]any{"title": "https://github.com/someuser"},
				map[string]any{"title": "Todo", "technologies": "Vue"},
				map[string]any{"title": "todo"},
				map[string]any{"title": "Site"},
			},
		},
		ModelEducation: {"entries": []any{
			map[string]any{"degree": "BSc", "institution": "MIT", "dates": "2010-2014"},
		}},
		ModelQuality:         {"score": "8.44"},
		ModelRecommendations: {"recommendations": []any{"a", "b", "c", "d", "e"}},
	}}

	result, err := NewAnalyzer(WithGateway(gw), WithTimeout(5*time.Second)).Run(context.Background(), sampleResume)
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Rust"}, result.Skills)

	work := result.Experience.DisplaySections[models.DisplayKeyWork]
	require.Len(t, work, 1)
	assert.Equal(t, "Engineer", work[0].Title)

	// the empty internship list falls back to the local extractor
	internships := result.Experience.DisplaySections[models.DisplayKeyInternship]
	require.Len(t, internships, 1)
	assert.Equal(t, "Backend Intern", internships[0].Title)

	// the profile link is dropped and the repeated Todo collapses
	projects := result.Experience.DisplaySections[models.DisplayKeyProject]
	require.Len(t, projects, 2)
	assert.Equal(t, "Todo", projects[0].Title)
	assert.Equal(t, "Vue", projects[0].Technologies)
	assert.Equal(t, "Site", projects[1].Title)
	assert.Equal(t, "Personal Project", projects[1].Company)
	assert.Equal(t, models.NoTechnologies, projects[1].Technologies)

	assert.Equal(t, []string{"MIT"}, result.Education.Institutions)
	assert.Equal(t, []string{"BSc"}, result.Education.Degrees)
	assert.Equal(t, 8.4, result.QualityScore)
	assert.Equal(t, []string{"a", "b", "c"}, result.Recommendations)

	require.Len(t, gw.timeouts, 5)
	for _, d := range gw.timeouts {
		assert.Equal(t, 5*time.Second, d)
	}
}

func TestAnalyzeDedupesGatewayEntries(t *testing.T) {
	gw := &stubGateway{responses: map[string]Response{
		ModelExperience: {
			"work": []any{
				map[string]any{"title": "Engineer", "company": "Acme"},
				map[string]any{"title": "engineer", "company": "ACME"},
				map[string]any{"company": "NoTitle Corp"},
			},
			"internships": []any{
				map[string]any{"title": "Data Intern", "company": "Gamma"},
				map[string]any{"title": "DATA INTERN", "company": "gamma"},
			},
		},
	}}

	result, err := NewAnalyzer(WithGateway(gw)).Run(context.Background(), sampleResume)
	require.NoError(t, err)

	work := result.Experience.DisplaySections[models.DisplayKeyWork]
	require.Len(t, work, 1)
	assert.Equal(t, "Acme", work[0].Company)

	internships := result.Experience.DisplaySections[models.DisplayKeyInternship]
	require.Len(t, internships, 1)
	assert.Equal(t, "Data Intern", internships[0].Title)
	assert.Equal(t, models.NotSpecified, internships[0].Duration)
}

func TestAnalyzeIsolatesCategoryFailure(t *testing.T) {
	gw := &stubGateway{panics: map[string]bool{ModelEducation: true}}

	result, err := NewAnalyzer(WithGateway(gw)).Run(context.Background(), sampleResume)

	assert.ErrorIs(t, err, ErrCategoryFailed)
	assert.Contains(t, result.Error, "partial analysis")
	assert.False(t, result.RetryPossible)
	assert.Empty(t, result.Education.FullEntries)
	assert.NotNil(t, result.Education.Institutions)
	assert.Contains(t, result.Skills, "Golang")
	assert.Equal(t, []string{RecommendLeadership, RecommendTailor}, result.Recommendations)
}

func TestAnalyzeCancelledContextSkipsGateway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gw := &stubGateway{}

	result, err := NewAnalyzer(WithGateway(gw)).Run(ctx, sampleResume)

	require.NoError(t, err)
	assert.Empty(t, gw.calls)
	assert.Contains(t, result.Skills, "Golang")
}

func TestAsGatewayError(t *testing.T) {
	timeout := AsGatewayError(context.DeadlineExceeded, ModelSkills)
	assert.Equal(t, GatewayTimeout, timeout.Kind)
	assert.True(t, timeout.Transient())

	other := AsGatewayError(errors.New("boom"), ModelQuality)
	assert.Equal(t, GatewayOther, other.Kind)
	assert.Equal(t, ModelQuality, other.Model)

	auth := NewGatewayError(GatewayAuth, ModelSkills, nil)
	assert.Same(t, auth, AsGatewayError(auth, ModelEducation))
	assert.False(t, auth.Transient())
	assert.False(t, NewGatewayError(GatewayNotFound, ModelSkills, nil).Transient())
	assert.Nil(t, AsGatewayError(nil, ModelSkills))
}
