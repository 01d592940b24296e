package services

import (
	"fmt"

	"alfredoptarigan/resume-analyzer/internal/analysis"
)

type PromptBuilder struct {
	templates map[string]string
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		templates: map[string]string{
			analysis.ModelSkills:          skillsPrompt,
			analysis.ModelExperience:      experiencePrompt,
			analysis.ModelEducation:       educationPrompt,
			analysis.ModelQuality:         qualityPrompt,
			analysis.ModelRecommendations: recommendationsPrompt,
		},
	}
}

// Build returns the prompt for a gateway model key. Unknown keys report false.
func (pb *PromptBuilder) Build(model, resumeText string) (string, bool) {
	tmpl, ok := pb.templates[model]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(tmpl, resumeText), true
}

const skillsPrompt = `You are an expert technical recruiter reading a résumé.

RÉSUMÉ:
%s

List the professional and technical skills the candidate states. Use the wording
of the résumé and do not invent skills.

Return JSON only:
{"skills": ["<skill>", ...]}`

const experiencePrompt = `You are an expert technical recruiter reading a résumé.

RÉSUMÉ:
%s

Split the candidate's experience into three groups:
1. work: paid positions that are not internships
2. internships: any role described as an intern or internship
3. projects: personal, academic, freelance, capstone or hackathon projects

Use "company" for the organisation, or for projects the kind of project.

Return JSON only:
{
  "work": [{"title": "", "company": "", "duration": "", "description": "", "technologies": ""}],
  "internships": [{"title": "", "company": "", "duration": "", "description": "", "technologies": ""}],
  "projects": [{"title": "", "company": "", "duration": "", "description": "", "technologies": ""}]
}`

const educationPrompt = `You are an expert technical recruiter reading a résumé.

RÉSUMÉ:
%s

List every education entry with its degree, institution and dates.

Return JSON only:
{"entries": [{"degree": "", "institution": "", "dates": ""}]}`

const qualityPrompt = `You are reviewing the writing quality of a résumé excerpt.

EXCERPT:
%s

Rate it from 1 to 10 considering structure, bullet points, action verbs and
quantified achievements.

Return JSON only:
{"score": <number 1-10>}`

const recommendationsPrompt = `You are a career coach reviewing a résumé.

RÉSUMÉ:
%s

Give at most three short, concrete suggestions to improve it, most important first.

Return JSON only:
{"recommendations": ["<suggestion>", ...]}`
