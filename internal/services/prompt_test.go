package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/analysis"
)

func TestPromptBuilderCoversEveryModel(t *testing.T) {
	pb := NewPromptBuilder()

	models := []string{
		analysis.ModelSkills,
		analysis.ModelExperience,
		analysis.ModelEducation,
		analysis.ModelQuality,
		analysis.ModelRecommendations,
	}
	for _, model := range models {
		t.Run(model, func(t *testing.T) {
			prompt, ok := pb.Build(model, "Jane Doe\nGolang")
			require.True(t, ok)
			assert.Contains(t, prompt, "Jane Doe\nGolang")
			assert.NotContains(t, prompt, "%!")
			assert.Contains(t, prompt, "JSON")
		})
	}
}

func TestPromptBuilderUnknownModel(t *testing.T) {
	_, ok := NewPromptBuilder().Build("salary", "text")
	assert.False(t, ok)
}
