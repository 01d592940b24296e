package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type CandidateSource string

const (
	SourceBullet   CandidateSource = "bullet"
	SourceHeader   CandidateSource = "header"
	SourceImplicit CandidateSource = "implicit"
	SourceGateway  CandidateSource = "gateway"
)

// RawProjectCandidate is a project mention that has not been validated yet.
type RawProjectCandidate struct {
	Name        string
	Description string
	GithubURL   string
	Source      CandidateSource

	// Duration and Technologies are only set by the gateway. They fill the
	// entry when the local scan of the text finds nothing.
	Duration     string
	Technologies string
}

const (
	leadingLinesRatio   = 0.3
	dedupePrefixLength  = 20
	maxImplicitWords    = 5
	maxHeaderWords      = 8
	maxHeaderLength     = 60
	maxProjectNameRunes = 80
)

var (
	trailingGithub  = regexp.MustCompile(`^(.+?)\s+(https?://(?:www\.)?github\.com/\S+)$`)
	githubProfile   = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?github\.com/[a-z0-9_-]+/?$`)
	githubURL       = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[a-z0-9_-]+(?:/[^\s),;]*)?`)
	bareURL         = regexp.MustCompile(`(?i)^(?:https?://|www\.)\S+$`)
	emailAddress    = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phoneNumber     = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	contactLabel    = regexp.MustCompile(`(?i)^(?:e-?mail|phone|mobile|tel|github|linkedin|portfolio|website|address)\s*:`)
	durationPattern = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*[-–]\s*(?:present|(?:19|20)\d{2})\b`)
	sentenceEnd     = regexp.MustCompile(`[.!?]\s+`)
	doubleSpace     = regexp.MustCompile(`\s{2,}`)
	nounPhraseStop  = regexp.MustCompile(`(?i)^(?:using|with|for|in|to|that|which|and|on|at|from|by|via|as)$`)
	orgMention      = regexp.MustCompile(`\b(?:for|at|with)\s+(?:the\s+)?([A-Z][\w&'.-]*(?:\s+[A-Z][\w&'.-]*){0,3})`)
)

var projectCategories = []struct {
	label string
	re    *regexp.Regexp
}{
	{"Capstone Project", regexp.MustCompile(`(?i)capstone|final[\s-]year|senior[\s-]project`)},
	{"Freelance Project", regexp.MustCompile(`(?i)freelance|\bclient|\bcontract|consulting`)},
	{"Academic Project", regexp.MustCompile(`(?i)academic|universit|\bschool|\bcourse|college|curriculum`)},
	{"Hackathon Project", regexp.MustCompile(`(?i)hackathon`)},
}

const defaultProjectCategory = "Personal Project"

// genericOrgWords never name an organization on their own.
var genericOrgWords = map[string]bool{
	"client": true, "clients": true, "university": true, "school": true,
	"college": true, "company": true, "team": true, "a": true, "an": true,
	"the": true, "my": true, "our": true, "personal": true, "local": true,
}

// extractProjects runs the three project parsers over the project region of
// text and turns the surviving candidates into classified entries.
func (x *ExperienceExtractor) extractProjects(text string) []models.ExperienceEntry {
	body := StripBoilerplate(text)

	region, err := FindSection(body, ProjectsSection)
	if err != nil {
		region = SkipLeadingLines(body, leadingLinesRatio)
	}

	lines := projectLines(region)
	if len(lines) == 0 {
		return nil
	}

	var candidates []RawProjectCandidate
	candidates = append(candidates, x.runParser(string(SourceBullet), parseBulletProjects, lines)...)
	candidates = append(candidates, x.runParser(string(SourceHeader), parseHeaderProjects, lines)...)
	candidates = append(candidates, x.runParser(string(SourceImplicit), parseImplicitProjects, lines)...)

	return x.refineProjects(candidates)
}

// refineProjects filters, splits, cleans and dedupes candidates, then
// classifies the survivors. Candidates from every source go through it.
func (x *ExperienceExtractor) refineProjects(candidates []RawProjectCandidate) []models.ExperienceEntry {
	found := len(candidates)
	candidates = FilterCandidates(candidates)
	candidates = splitCombinedCandidates(candidates)
	candidates = DedupeCandidates(cleanCandidates(candidates))
	if dropped := found - len(candidates); dropped > 0 {
		x.log.Debug("project candidates dropped", zap.Int("count", dropped), zap.Error(ErrMalformedEntry))
	}

	entries := make([]models.ExperienceEntry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, projectEntry(c))
	}
	return entries
}

func (x *ExperienceExtractor) runParser(name string, parse func([]string) []RawProjectCandidate, lines []string) (out []RawProjectCandidate) {
	defer func() {
		if r := recover(); r != nil {
			x.log.Warn("project parser failed",
				zap.String("parser", name),
				zap.Error(newExtractionError(name, ErrPatternMismatch, fmt.Sprint(r))),
			)
			out = nil
		}
	}()
	return parse(lines)
}

// projectLines drops contact details, bare links and section headings.
func projectLines(region string) []string {
	var lines []string
	for _, line := range splitLines(region) {
		plain := stripListMarker(line)
		switch {
		case plain == "":
		case bareURL.MatchString(plain), githubProfile.MatchString(plain):
		case emailAddress.MatchString(plain), contactLabel.MatchString(plain):
		case phoneNumber.MatchString(plain) && len(plain) < 25:
		case isSectionHeading(plain):
		default:
			lines = append(lines, line)
		}
	}
	return lines
}

var sectionHeading = regexp.MustCompile(`(?i)^(?:(?:selected|personal|academic|work|professional)\s+)?(?:projects?|experience|education|skills|internships?|employment(?:\s+history)?|certifications|summary|objective)(?:\s+experience)?\s*:?$`)

func isSectionHeading(line string) bool {
	return sectionHeading.MatchString(strings.TrimSpace(line))
}

// isHeaderLike reports whether a line reads as a short title such as
// "Task Tracker" rather than as a sentence.
func isHeaderLike(line string) bool {
	if isListItem(line) || isSectionHeading(line) {
		return false
	}
	line = strings.TrimSpace(line)
	if line == "" || len(line) > maxHeaderLength || len(strings.Fields(line)) > maxHeaderWords {
		return false
	}
	if strings.ContainsAny(line[len(line)-1:], ".!?,;") || strings.Contains(line, ", ") {
		return false
	}
	first := []rune(line)[0]
	if first < 'A' || first > 'Z' {
		return false
	}
	return !startsWithActionVerb(line)
}

// splitNameDescription splits "name: description" or "name - description".
// A colon that starts a URL scheme is not a separator.
func splitNameDescription(item string) (string, string, bool) {
	cut := -1
	sepLen := 0
	for i := 0; i < len(item); i++ {
		if item[i] == ':' && !strings.HasPrefix(item[i+1:], "//") {
			cut, sepLen = i, 1
			break
		}
		for _, sep := range []string{" - ", " – ", " — "} {
			if strings.HasPrefix(item[i:], sep) {
				cut, sepLen = i, len(sep)
				break
			}
		}
		if cut >= 0 {
			break
		}
	}
	if cut <= 0 {
		return "", "", false
	}

	name := strings.TrimSpace(item[:cut])
	desc := strings.TrimSpace(item[cut+sepLen:])
	if name == "" || desc == "" || len([]rune(name)) > maxProjectNameRunes {
		return "", "", false
	}
	return name, desc, true
}

func splitGithub(item string) (string, string) {
	if m := trailingGithub.FindStringSubmatch(item); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}
	return item, ""
}

// implicitName returns the short noun phrase following a project verb.
func implicitName(text string) string {
	loc := projectVerbPattern.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	var words []string
	for _, w := range strings.Fields(text[loc[1]:]) {
		trimmed := strings.TrimRight(w, ".,;:!?)")
		if nounPhraseStop.MatchString(trimmed) || trimmed == "" {
			break
		}
		words = append(words, trimmed)
		if trimmed != w || len(words) == maxImplicitWords {
			break
		}
	}
	return strings.Join(words, " ")
}

// parseBulletProjects reads list items, splitting "name: description" and a
// trailing GitHub link when present.
func parseBulletProjects(lines []string) []RawProjectCandidate {
	var out []RawProjectCandidate
	for _, line := range lines {
		if !isListItem(line) {
			continue
		}
		item, github := splitGithub(stripListMarker(line))

		c := RawProjectCandidate{GithubURL: github, Source: SourceBullet}
		if name, desc, ok := splitNameDescription(item); ok {
			c.Name, c.Description = name, desc
		} else {
			c.Name, c.Description = implicitName(item), item
			if c.Name == "" {
				c.Name = item
			}
		}
		out = append(out, c)
	}
	return out
}

// parseHeaderProjects reads a title line followed by a plain description line.
func parseHeaderProjects(lines []string) []RawProjectCandidate {
	var out []RawProjectCandidate
	for i := 0; i+1 < len(lines); i++ {
		next := lines[i+1]
		if !isHeaderLike(lines[i]) || isHeaderLike(next) || isListItem(next) {
			continue
		}
		name, github := splitGithub(strings.TrimSpace(lines[i]))
		out = append(out, RawProjectCandidate{
			Name:        name,
			Description: strings.TrimSpace(next),
			GithubURL:   github,
			Source:      SourceHeader,
		})
		i++
	}
	return out
}

// parseImplicitProjects finds "built|developed|... <noun phrase>" mentions in
// plain lines that are not the description of a title line.
func parseImplicitProjects(lines []string) []RawProjectCandidate {
	var out []RawProjectCandidate
	for i, line := range lines {
		if isListItem(line) || isHeaderLike(line) {
			continue
		}
		if i > 0 && isHeaderLike(lines[i-1]) {
			continue
		}
		for _, sentence := range splitSentences(line) {
			name := implicitName(sentence)
			if name == "" {
				continue
			}
			out = append(out, RawProjectCandidate{
				Name:        name,
				Description: sentence,
				Source:      SourceImplicit,
			})
		}
	}
	return out
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isGithubProfile(s string) bool {
	return githubProfile.MatchString(strings.TrimSpace(s))
}

// FilterCandidates drops candidates whose name or description is a bare
// GitHub profile link.
func FilterCandidates(candidates []RawProjectCandidate) []RawProjectCandidate {
	out := make([]RawProjectCandidate, 0, len(candidates))
	for _, c := range candidates {
		if isGithubProfile(c.Name) || isGithubProfile(c.Description) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// stripGithubProfiles removes profile links from s and keeps repository links.
func stripGithubProfiles(s string) string {
	return githubURL.ReplaceAllStringFunc(s, func(u string) string {
		lower := strings.ToLower(u)
		path := strings.Trim(lower[strings.Index(lower, "github.com/")+len("github.com/"):], "/")
		if strings.Contains(path, "/") {
			return u
		}
		return ""
	})
}

// cleanCandidates strips profile links and extra whitespace, then drops
// candidates left without a name and a description.
func cleanCandidates(candidates []RawProjectCandidate) []RawProjectCandidate {
	out := make([]RawProjectCandidate, 0, len(candidates))
	for _, c := range candidates {
		if isGithubProfile(c.GithubURL) {
			c.GithubURL = ""
		}
		c.Name = CollapseWhitespace(stripGithubProfiles(c.Name))
		c.Description = CollapseWhitespace(stripGithubProfiles(c.Description))
		if c.Name == "" && c.Description == "" {
			continue
		}
		if c.Name == "" {
			c.Name = c.Description
			if r := []rune(c.Name); len(r) > maxProjectNameRunes {
				c.Name = string(r[:maxProjectNameRunes])
			}
		}
		out = append(out, c)
	}
	return out
}

func candidateKey(c RawProjectCandidate) string {
	desc := []rune(c.Description)
	if len(desc) > dedupePrefixLength {
		desc = desc[:dedupePrefixLength]
	}
	sum := sha256.Sum256([]byte(strings.ToLower(c.Name + string(desc))))
	return hex.EncodeToString(sum[:])
}

// DedupeCandidates keeps the first candidate per hash of lower-cased name
// plus the first characters of the description.
func DedupeCandidates(candidates []RawProjectCandidate) []RawProjectCandidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]RawProjectCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := candidateKey(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// splitCombinedCandidates breaks descriptions that hold several project
// blurbs into one candidate per blurb.
func splitCombinedCandidates(candidates []RawProjectCandidate) []RawProjectCandidate {
	var out []RawProjectCandidate
	for _, c := range candidates {
		parts := splitCombinedDescription(c.Description)
		if len(parts) < 2 {
			out = append(out, c)
			continue
		}
		for i, part := range parts {
			split := RawProjectCandidate{Name: c.Name, Description: part, Source: c.Source}
			if i == 0 {
				split.GithubURL = c.GithubURL
				split.Duration, split.Technologies = c.Duration, c.Technologies
			} else if name := implicitName(part); name != "" {
				split.Name = name
			}
			out = append(out, split)
		}
	}
	return out
}

func splitCombinedDescription(desc string) []string {
	var parts []string
	for _, p := range doubleSpace.Split(strings.TrimSpace(desc), -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 1 {
		return parts
	}

	sentences := splitSentences(desc)
	verbs := 0
	for _, s := range sentences {
		if startsWithActionVerb(s) {
			verbs++
		}
	}
	if verbs < 2 {
		return []string{desc}
	}

	parts = nil
	for _, s := range sentences {
		if startsWithActionVerb(s) || len(parts) == 0 {
			parts = append(parts, s)
			continue
		}
		parts[len(parts)-1] += " " + s
	}
	return parts
}

// ClassifyProject labels a project by the first matching keyword family,
// then by a "for/at/with <Org>" mention, then as a personal project.
func ClassifyProject(text string) string {
	for _, cat := range projectCategories {
		if cat.re.MatchString(text) {
			return cat.label
		}
	}
	if org := organization(text); org != "" {
		return org
	}
	return defaultProjectCategory
}

func organization(text string) string {
	for _, m := range orgMention.FindAllStringSubmatch(text, -1) {
		org := strings.TrimRight(m[1], ".'-")
		first := strings.ToLower(strings.Fields(org)[0])
		if genericOrgWords[first] || isTechTerm(org) || isTechTerm(first) {
			continue
		}
		return org
	}
	return ""
}

func projectEntry(c RawProjectCandidate) models.ExperienceEntry {
	text := c.Name + " " + c.Description

	entry := models.ExperienceEntry{
		Title:        c.Name,
		Company:      ClassifyProject(text),
		Description:  c.Description,
		Duration:     durationPattern.FindString(text),
		Technologies: strings.Join(matchTechnologies(text), ", "),
		Type:         models.EntryProject,
	}
	if entry.Duration == "" {
		entry.Duration = c.Duration
	}
	if entry.Technologies == "" {
		entry.Technologies = c.Technologies
	}
	if c.GithubURL != "" {
		entry.Description = strings.TrimSpace(entry.Description + " " + c.GithubURL)
	}
	return entry
}
