package export

import (
	"regexp"
	"strings"
	"unicode"
)

// Run is an inline span with its styling flags.
type Run struct {
	Text      string `json:"text"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
}

// Paragraph is one block of the exported document. RTL marks the paragraph
// direction for Arabic content.
type Paragraph struct {
	Runs    []Run `json:"runs"`
	Heading int   `json:"heading,omitempty"`
	RTL     bool  `json:"rtl"`
}

type Document struct {
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

var headingMarker = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// FromText converts formatted assistant output into the export document
// shape: one paragraph per line, heading levels from markdown markers, bold
// runs from ** pairs.
func FromText(title, text string) Document {
	lines := strings.Split(text, "\n")
	paragraphs := make([]Paragraph, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		level := 0
		if m := headingMarker.FindStringSubmatch(trimmed); m != nil {
			level = len(m[1])
			trimmed = m[2]
		}

		paragraphs = append(paragraphs, Paragraph{
			Runs:    splitRuns(trimmed),
			Heading: level,
			RTL:     isRTL(trimmed),
		})
	}

	return Document{Title: title, Paragraphs: paragraphs}
}

// splitRuns alternates plain and bold spans on ** boundaries. An unbalanced
// trailing marker leaves the remainder plain.
func splitRuns(text string) []Run {
	parts := strings.Split(text, "**")
	runs := make([]Run, 0, len(parts))

	for i, part := range parts {
		if part == "" {
			continue
		}
		bold := i%2 == 1 && (len(parts)%2 == 1 || i < len(parts)-1)
		runs = append(runs, Run{Text: part, Bold: bold})
	}

	if len(runs) == 0 {
		runs = append(runs, Run{Text: text})
	}

	return runs
}

func isRTL(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
