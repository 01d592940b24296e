package analysis

import (
	"errors"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ExperienceSet holds every entry found in one résumé, before the display
// policy is applied.
type ExperienceSet struct {
	Work        []models.ExperienceEntry
	Internships []models.ExperienceEntry
	Projects    []models.ExperienceEntry
}

type ExperienceExtractor struct {
	log *zap.Logger
}

func NewExperienceExtractor(log *zap.Logger) *ExperienceExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExperienceExtractor{log: log}
}

// Extract splits the experience described in text into work, internship and
// project entries. Every returned entry is normalized.
func (x *ExperienceExtractor) Extract(text string) ExperienceSet {
	text = NormalizeLines(text)

	block, err := FindSection(text, ExperienceSection)
	if err != nil && !errors.Is(err, ErrSectionNotFound) {
		x.log.Warn("experience section lookup failed", zap.Error(err))
	}

	set := ExperienceSet{
		Work:        x.extractWork(block),
		Internships: x.extractInternships(text, block),
		Projects:    x.extractProjects(text),
	}
	set.Work = normalizeEntries(set.Work)
	set.Internships = normalizeEntries(set.Internships)
	set.Projects = normalizeEntries(set.Projects)

	x.log.Debug("experience extracted",
		zap.Int("work", len(set.Work)),
		zap.Int("internships", len(set.Internships)),
		zap.Int("projects", len(set.Projects)),
	)
	return set
}

func normalizeEntries(entries []models.ExperienceEntry) []models.ExperienceEntry {
	out := make([]models.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Normalize())
	}
	return out
}
