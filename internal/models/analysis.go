package models

type EntryType string

const (
	EntryWork       EntryType = "work"
	EntryInternship EntryType = "internship"
	EntryProject    EntryType = "project"
)

// Placeholder values used when an entry field could not be extracted.
const (
	NotSpecified           = "Not specified"
	NoDescription          = "No description available"
	NoTechnologies         = "No technologies specified"
	DisplayKeyWork         = "work"
	DisplayKeyInternship   = "internship"
	DisplayKeyProject      = "project"
	ErrorNoTextToAnalyze   = "no text available to analyze"
	DefaultQualityScore    = 5.0
	MaxRecommendationCount = 3
)

// AnalysisResult is the assembled output of one résumé analysis.
type AnalysisResult struct {
	Skills          []string         `json:"skills"`
	Experience      ExperienceBundle `json:"experience"`
	Education       EducationRecord  `json:"education"`
	QualityScore    float64          `json:"quality_score"`
	Recommendations []string         `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
	RetryPossible   bool             `json:"retry_possible,omitempty"`
}

type ExperienceBundle struct {
	HasWork         bool                         `json:"has_work"`
	HasInternship   bool                         `json:"has_internship"`
	HasProject      bool                         `json:"has_project"`
	DisplaySections map[string][]ExperienceEntry `json:"display_sections"`

	// Work keeps the extracted work entries even when the display policy
	// hides the work category.
	Work []ExperienceEntry `json:"-"`
}

type ExperienceEntry struct {
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Duration     string    `json:"duration"`
	Technologies string    `json:"technologies"`
	Type         EntryType `json:"type"`
}

// Normalize replaces blank fields with their placeholder values.
func (e ExperienceEntry) Normalize() ExperienceEntry {
	if e.Title == "" {
		e.Title = NotSpecified
	}
	if e.Company == "" {
		e.Company = NotSpecified
	}
	if e.Duration == "" {
		e.Duration = NotSpecified
	}
	if e.Description == "" {
		e.Description = NoDescription
	}
	if e.Technologies == "" {
		e.Technologies = NoTechnologies
	}
	return e
}

type EducationRecord struct {
	Institutions []string         `json:"institutions"`
	Degrees      []string         `json:"degrees"`
	Dates        []string         `json:"dates"`
	FullEntries  []EducationEntry `json:"full_entries"`
}

// EducationEntry carries either the structured triple or, when nothing
// could be parsed, the raw block text.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Raw         string `json:"raw,omitempty"`
}

func NewEducationRecord() EducationRecord {
	return EducationRecord{
		Institutions: []string{},
		Degrees:      []string{},
		Dates:        []string{},
		FullEntries:  []EducationEntry{},
	}
}

// NewAnalysisResult returns a result with every field holding a usable default.
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Skills: []string{},
		Experience: ExperienceBundle{
			DisplaySections: map[string][]ExperienceEntry{
				DisplayKeyInternship: {},
				DisplayKeyProject:    {},
			},
			Work: []ExperienceEntry{},
		},
		Education:       NewEducationRecord(),
		QualityScore:    DefaultQualityScore,
		Recommendations: []string{},
	}
}
