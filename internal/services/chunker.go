package services

import (
	"strings"
	"unicode/utf8"

	"alfredoptarigan/resume-analyzer/internal/analysis"
)

const (
	defaultChunkRunes   = 1000
	defaultOverlapLines = 1
)

type TextChunker interface {
	ChunkText(text string, maxRunes int, overlapLines int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs the lines of a résumé into chunks of at most maxRunes.
// Paragraph breaks are preferred as cut points and each chunk starts with
// the last overlapLines lines of the previous one. A line longer than
// maxRunes becomes a chunk of its own.
func (tc *textChunker) ChunkText(text string, maxRunes int, overlapLines int) []string {
	if maxRunes <= 0 {
		maxRunes = defaultChunkRunes
	}
	if overlapLines < 0 {
		overlapLines = 0
	}

	var (
		chunks  []string
		current []string
		size    int
		fresh   bool
	)

	flush := func() {
		if !fresh {
			return
		}
		chunks = append(chunks, strings.Join(current, "\n"))

		keep := overlapLines
		if keep > len(current)-1 {
			keep = len(current) - 1
		}
		current = append([]string(nil), current[len(current)-keep:]...)
		size = linesSize(current)
		fresh = false
	}

	add := func(line string) {
		n := utf8.RuneCountInString(line) + 1
		if size+n > maxRunes {
			flush()
			if size+n > maxRunes {
				current, size = nil, 0
			}
		}
		current = append(current, line)
		size += n
		fresh = true
	}

	for _, para := range strings.Split(analysis.NormalizeLines(text), "\n\n") {
		lines := nonEmptyLines(para)
		if len(lines) == 0 {
			continue
		}
		if fresh && size+linesSize(lines) > maxRunes {
			flush()
		}
		for _, line := range lines {
			add(line)
		}
	}
	flush()

	return chunks
}

func linesSize(lines []string) int {
	size := 0
	for _, l := range lines {
		size += utf8.RuneCountInString(l) + 1
	}
	return size
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
