package analysis

import (
	"regexp"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// "Jun 2020 - Aug 2020 Marketing Intern, Beta Inc"
// "Jun 2020 - Aug 2020 Software Engineering Internship, Beta Inc"
var datedInternship = regexp.MustCompile(`^(` + monthRange + `)\s+(.+?\b(?i:intern(?:ship)?s?))\s*,\s*(.+)$`)

func parseDatedInternship(line string) Match {
	m := datedInternship.FindStringSubmatch(stripListMarker(line))
	if m == nil {
		return noMatch
	}
	return matched(models.ExperienceEntry{
		Duration: strings.TrimSpace(m[1]),
		Title:    strings.TrimSpace(m[2]),
		Company:  strings.TrimSpace(m[3]),
		Type:     models.EntryInternship,
	})
}

var internshipRules = []Rule{
	{Name: "internship_dated", Parse: parseDatedInternship, Details: true},
	{Name: "internship_bulleted", Parse: parseBulleted(models.EntryInternship)},
	{Name: "internship_at", Parse: parseAt(models.EntryInternship)},
}

// extractInternships prefers a dedicated INTERNSHIP section and otherwise
// treats every intern line of the EXPERIENCE block as a candidate.
func (x *ExperienceExtractor) extractInternships(text, experienceBlock string) []models.ExperienceEntry {
	var lines []string
	if section, err := FindSection(text, InternshipSection); err == nil {
		lines = splitLines(section)
	} else {
		for _, line := range splitLines(experienceBlock) {
			if mentionsIntern(line) {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) == 0 {
		return nil
	}

	return DedupeEntries(applyRules(x.log, internshipRules, lines))
}
