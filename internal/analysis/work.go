package analysis

import (
	"alfredoptarigan/resume-analyzer/internal/models"
)

var workRules = []Rule{
	{Name: "work_dated", Parse: parseDated(models.EntryWork), Details: true},
	{Name: "work_bulleted", Parse: parseBulleted(models.EntryWork)},
}

// extractWork parses the work entries of an EXPERIENCE block. Lines and
// matches mentioning an internship are left to the internship extractor.
func (x *ExperienceExtractor) extractWork(block string) []models.ExperienceEntry {
	if block == "" {
		return nil
	}

	var lines []string
	for _, line := range splitLines(block) {
		if !mentionsIntern(line) {
			lines = append(lines, line)
		}
	}

	var entries []models.ExperienceEntry
	for _, e := range applyRules(x.log, workRules, lines) {
		if entryMentionsIntern(e) {
			continue
		}
		entries = append(entries, e)
	}
	return DedupeEntries(entries)
}
