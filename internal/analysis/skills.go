package analysis

import (
	"regexp"
	"strings"
)

const minSkillLength = 4

var (
	listMarker       = regexp.MustCompile(`^(?:[•*·–-]|\d+[.)])\s*`)
	skillLabel       = regexp.MustCompile(`^[A-Za-z][A-Za-z /&]{1,24}:\s*`)
	skillDelimiters  = regexp.MustCompile(`[,;|]`)
	skillNoise       = regexp.MustCompile(`(?i)\b(?:years?|experience|proficient)\b`)
	capitalizedWords = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)+\b`)
)

// phraseStopWords disqualify a capitalized phrase from being a skill name.
var phraseStopWords = map[string]bool{
	"experience": true, "education": true, "skills": true, "projects": true,
	"internship": true, "university": true, "present": true, "summary": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

// ExtractSkills returns the deduplicated skills listed in text. Items from a
// SKILLS section are used when one exists; otherwise the whole document is
// scanned for known technology names and capitalized tool names.
func ExtractSkills(text string) []string {
	section, err := FindSection(text, SkillsSection)
	if err == nil {
		return dedupeFold(skillItems(section))
	}
	return dedupeFold(scanSkills(CollapseWhitespace(text)))
}

func isListItem(line string) bool {
	return listMarker.MatchString(line)
}

func stripListMarker(line string) string {
	return strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
}

func skillItems(section string) []string {
	lines := splitLines(section)

	var bulleted []string
	for _, line := range lines {
		if isListItem(line) {
			bulleted = append(bulleted, line)
		}
	}
	if len(bulleted) > 0 {
		lines = bulleted
	}

	items := make([]string, 0, len(lines))
	for _, line := range lines {
		line = skillLabel.ReplaceAllString(stripListMarker(line), "")
		for _, item := range skillDelimiters.Split(line, -1) {
			item = strings.Trim(strings.TrimSpace(item), ".")
			if len([]rune(item)) < minSkillLength || skillNoise.MatchString(item) {
				continue
			}
			items = append(items, item)
		}
	}
	return items
}

func scanSkills(text string) []string {
	skills := matchTechnologies(text)

	for _, phrase := range capitalizedWords.FindAllString(text, -1) {
		if hasStopWord(phrase) {
			continue
		}
		skills = append(skills, phrase)
	}
	return skills
}

func hasStopWord(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if phraseStopWords[strings.ToLower(w)] {
			return true
		}
	}
	return false
}

// dedupeFold drops case-insensitive duplicates, keeping first occurrences.
func dedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
