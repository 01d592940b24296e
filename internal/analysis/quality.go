package analysis

import (
	"math"
	"regexp"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	minQualityScore = 1.0
	maxQualityScore = 10.0

	bulletWeight = 6.0
	bulletCap    = 3.0
	verbWeight   = 0.25
	verbCap      = 2.0
	metricWeight = 0.5
	metricCap    = 2.0
)

// quantifiedMetric matches percentages and money amounts.
var quantifiedMetric = regexp.MustCompile(`\d+(?:[.,]\d+)?\s?%|[$€£]\s?\d[\d,]*(?:\.\d+)?(?:\s?[kKmMbB]\b)?`)

// ScoreQuality rates text from 1 to 10 using bullet density, action verbs
// and quantified achievements.
func ScoreQuality(text string) float64 {
	lines := splitLines(NormalizeLines(text))
	if len(lines) == 0 {
		return models.DefaultQualityScore
	}

	bullets := 0
	for _, line := range lines {
		if isListItem(line) {
			bullets++
		}
	}
	density := float64(bullets) / float64(len(lines))

	flat := CollapseWhitespace(text)
	verbs := len(actionVerbPattern.FindAllStringIndex(flat, -1))
	metrics := len(quantifiedMetric.FindAllStringIndex(flat, -1))

	score := models.DefaultQualityScore +
		math.Min(bulletCap, density*bulletWeight) +
		math.Min(verbCap, float64(verbs)*verbWeight) +
		math.Min(metricCap, float64(metrics)*metricWeight)

	return ClampScore(score)
}

// ClampScore bounds a score to [1, 10] with one decimal. NaN becomes the
// default score.
func ClampScore(score float64) float64 {
	if math.IsNaN(score) {
		return models.DefaultQualityScore
	}
	score = math.Max(minQualityScore, math.Min(maxQualityScore, score))
	return math.Round(score*10) / 10
}

func hasQuantifiedMetric(text string) bool {
	return quantifiedMetric.MatchString(text)
}
