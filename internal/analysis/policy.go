package analysis

import (
	"alfredoptarigan/resume-analyzer/internal/models"
)

// ComposeDisplaySections builds the experience bundle shown to callers. The
// work category is only listed when work entries exist; the entries are
// kept on the bundle either way.
func ComposeDisplaySections(set ExperienceSet) models.ExperienceBundle {
	work := nonNil(set.Work)
	internships := nonNil(set.Internships)
	projects := nonNil(set.Projects)

	bundle := models.ExperienceBundle{
		HasWork:       len(work) > 0,
		HasInternship: len(internships) > 0,
		HasProject:    len(projects) > 0,
		DisplaySections: map[string][]models.ExperienceEntry{
			models.DisplayKeyInternship: internships,
			models.DisplayKeyProject:    projects,
		},
		Work: work,
	}
	if bundle.HasWork {
		bundle.DisplaySections[models.DisplayKeyWork] = work
	}
	return bundle
}

// TruncateRecommendations keeps the first limit recommendations in order.
// Generic suggestions sit at the end of the list, so they are the first to
// go, but signal-driven ones are dropped too once more than limit fire.
func TruncateRecommendations(recs []string, limit int) []string {
	if limit < 0 {
		limit = 0
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}

func nonNil(entries []models.ExperienceEntry) []models.ExperienceEntry {
	if entries == nil {
		return []models.ExperienceEntry{}
	}
	return entries
}
