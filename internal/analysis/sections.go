package analysis

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// SectionPattern describes one family of résumé section headers.
//
// Headers are tried in order (specific before generic) and the first one that
// yields non-empty, permitted content wins. Content runs from the end of the
// header to the earliest Stops header after it, or to the end of the text.
type SectionPattern struct {
	Name    string
	Headers []string
	Stops   []string
	// Forbidden rejects a candidate section whose content matches it.
	Forbidden *regexp.Regexp
	// NotAfter rejects a header occurrence directly preceded by one of these
	// qualifiers on the same line, e.g. EXPERIENCE inside "PROJECT EXPERIENCE".
	NotAfter []string
}

var (
	SkillsSection = SectionPattern{
		Name:    "skills",
		Headers: []string{"TECHNICAL SKILLS", "CORE COMPETENCIES", "SKILLS"},
		Stops: []string{
			"WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "EXPERIENCE",
			"EDUCATION", "PROJECTS", "INTERNSHIP", "EMPLOYMENT",
		},
	}

	ExperienceSection = SectionPattern{
		Name:     "experience",
		Headers:  []string{"WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "EMPLOYMENT HISTORY", "EXPERIENCE"},
		Stops:    []string{"INTERNSHIPS", "INTERNSHIP", "EDUCATION", "SKILLS", "PROJECTS", "PROJECT EXPERIENCE"},
		NotAfter: []string{"INTERNSHIP", "PROJECT"},
	}

	InternshipSection = SectionPattern{
		Name:    "internship",
		Headers: []string{"INTERNSHIP EXPERIENCE", "INTERNSHIPS", "INTERNSHIP"},
		Stops:   []string{"WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "EXPERIENCE", "EDUCATION", "SKILLS", "PROJECTS", "EMPLOYMENT"},
	}

	ProjectsSection = SectionPattern{
		Name: "projects",
		Headers: []string{
			"SELECTED PROJECTS", "PERSONAL PROJECTS", "ACADEMIC PROJECTS",
			"PROJECT EXPERIENCE", "PROJECTS",
		},
		Stops: []string{
			"WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "EXPERIENCE",
			"EDUCATION", "SKILLS", "INTERNSHIP", "EMPLOYMENT", "CERTIFICATIONS",
		},
		Forbidden: regexp.MustCompile(`(?i)internship|employment|work experience`),
		NotAfter:  []string{"INTERNSHIP"},
	}

	EducationSection = SectionPattern{
		Name:    "education",
		Headers: []string{"ACADEMIC BACKGROUND", "EDUCATION"},
		Stops:   []string{"EXPERIENCE", "WORK", "SKILLS", "PROJECTS", "INTERNSHIP"},
	}
)

// boilerplateHeaders mark where the body of a résumé starts.
var boilerplateHeaders = []string{"EDUCATION", "EXPERIENCE", "PROJECTS", "SKILLS"}

type headerMatch struct {
	start, end int
}

type headerRegexps struct {
	line   *regexp.Regexp
	inline *regexp.Regexp
}

var headerCache sync.Map // header name -> *headerRegexps

func compileHeader(name string) *headerRegexps {
	if cached, ok := headerCache.Load(name); ok {
		return cached.(*headerRegexps)
	}

	words := strings.Fields(strings.ToUpper(name))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	body := strings.Join(words, `\s+`)

	compiled := &headerRegexps{
		// The header alone on its line, or opening a "Header: content" line.
		line: regexp.MustCompile(`(?im)^[ \t]*` + body + `[ \t]*(?::|$)`),
		// The upper-case header anywhere, as produced by single-line PDF text.
		inline: regexp.MustCompile(`\b` + body + `\b:?`),
	}
	actual, _ := headerCache.LoadOrStore(name, compiled)
	return actual.(*headerRegexps)
}

// findHeaders returns the non-overlapping occurrences of a header in text,
// ordered by position.
func findHeaders(text, name string) []headerMatch {
	re := compileHeader(name)

	var found []headerMatch
	for _, loc := range re.line.FindAllStringIndex(text, -1) {
		found = append(found, headerMatch{start: loc[0], end: loc[1]})
	}
	for _, loc := range re.inline.FindAllStringIndex(text, -1) {
		found = append(found, headerMatch{start: loc[0], end: loc[1]})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].start == found[j].start {
			return found[i].end > found[j].end
		}
		return found[i].start < found[j].start
	})

	merged := found[:0]
	lastEnd := -1
	for _, m := range found {
		if m.start < lastEnd {
			continue
		}
		merged = append(merged, m)
		lastEnd = m.end
	}
	return merged
}

func precededBy(text string, pos int, qualifiers []string) bool {
	if len(qualifiers) == 0 {
		return false
	}

	before := text[:pos]
	if nl := strings.LastIndexByte(before, '\n'); nl >= 0 {
		before = before[nl+1:]
	}
	before = strings.ToUpper(strings.TrimRight(before, " \t:"))
	for _, q := range qualifiers {
		if strings.HasSuffix(before, q) {
			return true
		}
	}
	return false
}

// earliestHeader returns the position of the first occurrence of any of the
// names at or after from, or -1.
func earliestHeader(text string, names []string, from int) int {
	best := -1
	for _, name := range names {
		for _, m := range findHeaders(text, name) {
			if m.start < from {
				continue
			}
			if best == -1 || m.start < best {
				best = m.start
			}
			break
		}
	}
	return best
}

// FindSection returns the trimmed content of the first section of the family
// described by p, or ErrSectionNotFound.
func FindSection(text string, p SectionPattern) (string, error) {
	for _, header := range p.Headers {
		for _, m := range findHeaders(text, header) {
			if precededBy(text, m.start, p.NotAfter) {
				continue
			}

			end := earliestHeader(text, p.Stops, m.end)
			if end == -1 {
				end = len(text)
			}

			content := strings.TrimSpace(text[m.end:end])
			if content == "" {
				continue
			}
			if p.Forbidden != nil && p.Forbidden.MatchString(content) {
				continue
			}
			return content, nil
		}
	}
	return "", newExtractionError(p.Name, ErrSectionNotFound, "")
}

// HasHeader reports whether the header occurs anywhere in text.
func HasHeader(text, header string) bool {
	return len(findHeaders(text, header)) > 0
}

// StripBoilerplate drops everything before the first main section header.
// Text without any such header is returned unchanged.
func StripBoilerplate(text string) string {
	if pos := earliestHeader(text, boilerplateHeaders, 0); pos > 0 {
		return text[pos:]
	}
	return text
}

// SkipLeadingLines drops the first ratio share of non-empty lines, which in
// most résumés hold the name and contact block.
func SkipLeadingLines(text string, ratio float64) string {
	lines := splitLines(text)
	start := int(float64(len(lines)) * ratio)
	if start >= len(lines) {
		return ""
	}
	return strings.Join(lines[start:], "\n")
}
