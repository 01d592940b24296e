package analysis

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	blankLineRun   = regexp.MustCompile(`\n{3,}`)
	bulletReplacer = strings.NewReplacer(
		"â€¢", "•",
		"▪", "•",
		"◦", "•",
		"●", "•",
		"‣", "•",
		"∙", "•",
		" ", " ",
		"\t", " ",
	)
)

// CollapseWhitespace turns every whitespace run, newlines included, into a
// single space. Use it for whole-text scans that do not care about lines.
func CollapseWhitespace(raw string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(raw, " "))
}

// NormalizeLines cleans extracted text while keeping line structure intact.
// Bullet variants are folded to "•" and runs of blank lines are squeezed to
// one; spacing inside a line is preserved.
func NormalizeLines(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = bulletReplacer.Replace(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	text = strings.Join(lines, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")

	return strings.Trim(text, "\n ")
}

// splitLines returns the non-empty, trimmed lines of text.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
