package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkillsFromBulletedSection(t *testing.T) {
	text := `TECHNICAL SKILLS
• Golang
• Python
• SQL
• 5 years experience
• python
EXPERIENCE
Jan 2021 - Present Engineer, Acme`

	assert.Equal(t, []string{"Golang", "Python"}, ExtractSkills(text))
}

func TestExtractSkillsFromDelimitedSection(t *testing.T) {
	text := "SKILLS\nLanguages: Java, Python; Docker | Kubernetes\nEDUCATION\nState University"

	assert.Equal(t, []string{"Java", "Python", "Docker", "Kubernetes"}, ExtractSkills(text))
}

func TestExtractSkillsNoiseOnlySection(t *testing.T) {
	text := "SKILLS\n• Proficient in many things\n• Go\nEDUCATION\nMIT"

	skills := ExtractSkills(text)
	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestExtractSkillsWholeTextFallback(t *testing.T) {
	text := "Worked with Docker and React on Google Cloud Platform."

	skills := ExtractSkills(text)
	assert.Contains(t, skills, "react")
	assert.Contains(t, skills, "docker")
	assert.Contains(t, skills, "gcp")
	assert.Contains(t, skills, "Google Cloud Platform")
}

func TestExtractSkillsEmptyText(t *testing.T) {
	skills := ExtractSkills("")
	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestDedupeFold(t *testing.T) {
	assert.Equal(t, []string{"Go", "rust"}, dedupeFold([]string{"Go", "go", "rust", "RUST"}))
}
