package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// Match is the outcome of applying one grammar rule to one line.
type Match struct {
	Entry models.ExperienceEntry
	OK    bool
}

func matched(e models.ExperienceEntry) Match { return Match{Entry: e, OK: true} }

var noMatch = Match{}

// Rule recognises one entry shape.
type Rule struct {
	Name  string
	Parse func(line string) Match
	// Details makes the rule collect the list items that follow a matched
	// line as the entry description.
	Details bool
}

const monthName = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?`

var (
	// "Jan 2021 - Present" / "Jun 2020 – Aug 2020"
	monthRange = monthName + `\s+\d{4}\s*[-–—]\s*(?:` + monthName + `\s+\d{4}|(?i:present|current))`

	datedEntry = regexp.MustCompile(`^(` + monthRange + `)\s+(.+?)\s*,\s*(.+)$`)

	// "<a> - <b> - <c>" or "<a>, <b>, <c>"
	threePart = regexp.MustCompile(`^(.+?)(?:\s+[-–—|]\s+|\s*,\s*)(.+?)(?:\s+[-–—|]\s+|\s*,\s*)(.+)$`)

	// "<title> at <company> (<duration>)"
	atEntry = regexp.MustCompile(`^(.+?)\s+at\s+(.+?)\s*\((.+?)\)\s*$`)

	yearOrPresent = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\b|\bpresent\b|\bcurrent\b`)
	internWord    = regexp.MustCompile(`(?i)\bintern(?:ship)?s?\b`)
)

func mentionsIntern(s string) bool {
	return internWord.MatchString(s)
}

func entryMentionsIntern(e models.ExperienceEntry) bool {
	return mentionsIntern(e.Title) || mentionsIntern(e.Company) || mentionsIntern(e.Description)
}

// parseDated reads "Month YYYY - Month YYYY|Present <title>, <company>".
func parseDated(kind models.EntryType) func(string) Match {
	return func(line string) Match {
		m := datedEntry.FindStringSubmatch(stripListMarker(line))
		if m == nil {
			return noMatch
		}
		return matched(models.ExperienceEntry{
			Duration: strings.TrimSpace(m[1]),
			Title:    strings.TrimSpace(m[2]),
			Company:  strings.TrimSpace(m[3]),
			Type:     kind,
		})
	}
}

// parseBulleted reads a list item "<title> - <company> - <duration>".
func parseBulleted(kind models.EntryType) func(string) Match {
	return func(line string) Match {
		if !isListItem(line) {
			return noMatch
		}
		m := threePart.FindStringSubmatch(stripListMarker(line))
		if m == nil || !yearOrPresent.MatchString(m[3]) {
			return noMatch
		}
		return matched(models.ExperienceEntry{
			Title:    strings.TrimSpace(m[1]),
			Company:  strings.TrimSpace(m[2]),
			Duration: strings.TrimSpace(m[3]),
			Type:     kind,
		})
	}
}

// parseAt reads a list item "<title> at <company> (<duration>)".
func parseAt(kind models.EntryType) func(string) Match {
	return func(line string) Match {
		if !isListItem(line) {
			return noMatch
		}
		m := atEntry.FindStringSubmatch(stripListMarker(line))
		if m == nil {
			return noMatch
		}
		return matched(models.ExperienceEntry{
			Title:    strings.TrimSpace(m[1]),
			Company:  strings.TrimSpace(m[2]),
			Duration: strings.TrimSpace(m[3]),
			Type:     kind,
		})
	}
}

// applyRule runs one rule over every line. A panic inside the rule is
// logged and ends that rule only. isEntry decides where the details of a
// matched entry end; nil means "where this rule matches again".
func applyRule(log *zap.Logger, rule Rule, lines []string, isEntry func(string) bool) (entries []models.ExperienceEntry) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("grammar rule failed",
				zap.String("rule", rule.Name),
				zap.Error(newExtractionError(rule.Name, ErrPatternMismatch, fmt.Sprint(r))),
			)
		}
	}()

	if isEntry == nil {
		isEntry = func(line string) bool { return rule.Parse(line).OK }
	}

	for i := 0; i < len(lines); i++ {
		m := rule.Parse(lines[i])
		if !m.OK {
			continue
		}
		if rule.Details {
			var details []string
			for i+1 < len(lines) && isListItem(lines[i+1]) && !isEntry(lines[i+1]) {
				i++
				details = append(details, stripListMarker(lines[i]))
			}
			m.Entry.Description = strings.Join(details, " ")
		}
		entries = append(entries, m.Entry)
	}
	return entries
}

func safeParse(rule Rule, line string) (m Match) {
	defer func() {
		if recover() != nil {
			m = noMatch
		}
	}()
	return rule.Parse(line)
}

// applyRules unions the matches of every rule, in rule order.
func applyRules(log *zap.Logger, rules []Rule, lines []string) []models.ExperienceEntry {
	isEntry := func(line string) bool {
		for _, rule := range rules {
			if safeParse(rule, line).OK {
				return true
			}
		}
		return false
	}

	var entries []models.ExperienceEntry
	for _, rule := range rules {
		entries = append(entries, applyRule(log, rule, lines, isEntry)...)
	}
	return entries
}

func entryKey(e models.ExperienceEntry) string {
	return strings.ToLower(strings.TrimSpace(e.Company)) + "|" + strings.ToLower(strings.TrimSpace(e.Title))
}

// DedupeEntries keeps the first entry per lower-cased company|title key and
// drops entries missing either field.
func DedupeEntries(entries []models.ExperienceEntry) []models.ExperienceEntry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]models.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Company) == "" {
			continue
		}
		key := entryKey(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
