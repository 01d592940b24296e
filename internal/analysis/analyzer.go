package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// qualityPrefixRunes is how much of the résumé is sent to the quality model.
const qualityPrefixRunes = 1000

// Analyzer turns résumé text into an AnalysisResult. Each category asks the
// gateway first, when one is configured, and falls back to local heuristics.
// An Analyzer holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	gateway    Gateway
	timeout    time.Duration
	log        *zap.Logger
	experience *ExperienceExtractor
}

type Option func(*Analyzer)

func WithGateway(g Gateway) Option {
	return func(a *Analyzer) { a.gateway = g }
}

func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		timeout: DefaultGatewayTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.experience = NewExperienceExtractor(a.log.Named("experience"))
	return a
}

// Analyze returns a result with every field set. Problems are summarised
// in the result's Error field.
func (a *Analyzer) Analyze(ctx context.Context, text string) *models.AnalysisResult {
	result, _ := a.Run(ctx, text)
	return result
}

// Run is Analyze that also returns the most severe failure met: ErrNoText, a
// *GatewayError or an *ExtractionError.
func (a *Analyzer) Run(ctx context.Context, text string) (*models.AnalysisResult, error) {
	result := models.NewAnalysisResult()
	if strings.TrimSpace(text) == "" {
		result.Error = models.ErrorNoTextToAnalyze
		return result, ErrNoText
	}

	r := &analysisRun{Analyzer: a, ctx: ctx}
	normalized := NormalizeLines(text)

	r.isolate("skills", func() { result.Skills = r.skills(normalized) })
	r.isolate("experience", func() { result.Experience = r.experienceBundle(normalized) })
	r.isolate("education", func() { result.Education = r.education(normalized) })
	r.isolate("quality", func() { result.QualityScore = r.quality(normalized) })
	r.isolate("recommendations", func() { result.Recommendations = r.recommendations(normalized) })

	result.Error, result.RetryPossible = r.summary()

	a.log.Debug("analysis finished",
		zap.Int("skills", len(result.Skills)),
		zap.Bool("has_work", result.Experience.HasWork),
		zap.Bool("has_internship", result.Experience.HasInternship),
		zap.Bool("has_project", result.Experience.HasProject),
		zap.Int("education", len(result.Education.FullEntries)),
		zap.Float64("quality_score", result.QualityScore),
		zap.String("error", result.Error),
	)
	return result, r.worst
}

const (
	severityNone = iota
	severityCategory
	severityTransient
	severityAuth
)

// analysisRun carries the state of a single Run call.
type analysisRun struct {
	*Analyzer
	ctx        context.Context
	authFailed bool
	severity   int
	worst      error
}

func (r *analysisRun) raise(severity int, err error) {
	if severity > r.severity {
		r.severity = severity
		r.worst = err
	}
}

func (r *analysisRun) isolate(category string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			err := newExtractionError(category, ErrCategoryFailed, fmt.Sprint(rec))
			r.log.Error("category failed, default kept", zap.String("category", category), zap.Error(err))
			r.raise(severityCategory, err)
		}
	}()
	fn()
}

func (r *analysisRun) summary() (string, bool) {
	switch r.severity {
	case severityAuth:
		return fmt.Sprintf("inference gateway rejected the credentials: %v", r.worst), false
	case severityTransient:
		return fmt.Sprintf("inference gateway unavailable, local heuristics used: %v", r.worst), true
	case severityCategory:
		return fmt.Sprintf("partial analysis: %v", r.worst), false
	default:
		return "", false
	}
}

// consult calls the gateway for one category. It reports false when the
// caller should use its local fallback.
func (r *analysisRun) consult(model, input string) (Response, bool) {
	if r.gateway == nil || r.authFailed || r.ctx.Err() != nil {
		return nil, false
	}

	resp, err := r.gateway.Call(r.ctx, model, input, r.timeout)
	if err != nil {
		r.gatewayFailed(model, err)
		return nil, false
	}
	if len(resp) == 0 {
		r.log.Debug("empty gateway response, using fallback", zap.String("model", model))
		return nil, false
	}
	return resp, true
}

func (r *analysisRun) gatewayFailed(model string, err error) {
	gwErr := AsGatewayError(err, model)
	fields := []zap.Field{zap.String("model", model), zap.String("kind", string(gwErr.Kind)), zap.Error(err)}

	switch gwErr.Kind {
	case GatewayAuth:
		r.authFailed = true
		r.log.Error("gateway authentication failed", fields...)
		r.raise(severityAuth, gwErr)
	case GatewayNotFound:
		r.log.Info("gateway model not found, using fallback", fields...)
	default:
		r.log.Warn("gateway call failed, using fallback", fields...)
		r.raise(severityTransient, gwErr)
	}
}

func (r *analysisRun) skills(text string) []string {
	if resp, ok := r.consult(ModelSkills, text); ok {
		if skills := dedupeFold(coerceStrings(resp["skills"])); len(skills) > 0 {
			return skills
		}
	}
	return ExtractSkills(text)
}

func (r *analysisRun) experienceBundle(text string) models.ExperienceBundle {
	var set ExperienceSet
	if resp, ok := r.consult(ModelExperience, text); ok {
		var work []models.ExperienceEntry
		for _, e := range responseEntries(resp["work"], models.EntryWork) {
			if !entryMentionsIntern(e) {
				work = append(work, e)
			}
		}
		set.Work = normalizeEntries(DedupeEntries(work))
		set.Internships = normalizeEntries(DedupeEntries(responseEntries(resp["internships"], models.EntryInternship)))
		set.Projects = normalizeEntries(r.experience.refineProjects(responseProjects(resp["projects"])))
	}

	if len(set.Work) == 0 || len(set.Internships) == 0 || len(set.Projects) == 0 {
		local := r.experience.Extract(text)
		if len(set.Work) == 0 {
			set.Work = local.Work
		}
		if len(set.Internships) == 0 {
			set.Internships = local.Internships
		}
		if len(set.Projects) == 0 {
			set.Projects = local.Projects
		}
	}
	return ComposeDisplaySections(set)
}

func (r *analysisRun) education(text string) models.EducationRecord {
	if resp, ok := r.consult(ModelEducation, text); ok {
		if record, ok := responseEducation(resp); ok {
			return record
		}
	}
	return ExtractEducation(text)
}

func (r *analysisRun) quality(text string) float64 {
	prefix := []rune(text)
	if len(prefix) > qualityPrefixRunes {
		prefix = prefix[:qualityPrefixRunes]
	}
	if resp, ok := r.consult(ModelQuality, string(prefix)); ok {
		if score := coerceFloat(resp["score"]); !math.IsNaN(score) {
			return ClampScore(score)
		}
	}
	return ScoreQuality(text)
}

func (r *analysisRun) recommendations(text string) []string {
	if resp, ok := r.consult(ModelRecommendations, text); ok {
		if recs := coerceStrings(resp["recommendations"]); len(recs) > 0 {
			return TruncateRecommendations(recs, models.MaxRecommendationCount)
		}
	}
	return Recommend(text)
}

// IsAuthFailure reports whether err carries a gateway authentication error.
func IsAuthFailure(err error) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr) && gwErr.Kind == GatewayAuth
}

// IsTransientFailure reports whether err carries a gateway error that may
// clear up on a later retry.
func IsTransientFailure(err error) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr) && gwErr.Transient()
}
