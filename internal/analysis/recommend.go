package analysis

import (
	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	RecommendMetrics    = "Quantify your achievements with numbers, percentages or amounts"
	RecommendBullets    = "Use bullet points to describe your responsibilities and achievements"
	RecommendEducation  = "Add an education section with your degrees and dates"
	RecommendSkills     = "Add a dedicated skills section listing your key technologies"
	RecommendLeadership = "Highlight leadership experiences"
	RecommendTailor     = "Tailor to job description keywords"
)

const minBulletPoints = 3

// genericRecommendations are appended after the signal-driven ones.
var genericRecommendations = []string{RecommendLeadership, RecommendTailor}

// Recommend derives at most three improvement suggestions from the
// structure of text.
func Recommend(text string) []string {
	normalized := NormalizeLines(text)

	bullets := 0
	for _, line := range splitLines(normalized) {
		if isListItem(line) {
			bullets++
		}
	}

	var recs []string
	if !hasQuantifiedMetric(normalized) {
		recs = append(recs, RecommendMetrics)
	}
	if bullets < minBulletPoints {
		recs = append(recs, RecommendBullets)
	}
	if !HasHeader(normalized, "EDUCATION") {
		recs = append(recs, RecommendEducation)
	}
	if !HasHeader(normalized, "SKILLS") {
		recs = append(recs, RecommendSkills)
	}
	recs = append(recs, genericRecommendations...)

	return TruncateRecommendations(recs, models.MaxRecommendationCount)
}
