package editor

import (
	"regexp"
	"strings"
)

// NodeKind is the abstract block unit the rich-text surface understands.
// The assistant never sees the editor's internal document model beyond
// these three kinds.
type NodeKind string

const (
	KindParagraph  NodeKind = "paragraph"
	KindHeading    NodeKind = "heading"
	KindBulletList NodeKind = "bullet_list"
)

type Node struct {
	Kind NodeKind `json:"kind"`
	// Level is set for headings only, 1..6.
	Level int    `json:"level,omitempty"`
	Text  string `json:"text"`
}

var (
	headingPrefix = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletPrefix  = regexp.MustCompile(`^[-*•]\s+(.*)$`)
)

// TextToNodes converts formatted text into structural nodes, one line at a
// time. Each bullet line becomes its own single-item list node; consecutive
// bullets are not merged into one list. The frontend renders either shape
// the same way, so this stays the documented baseline.
func TextToNodes(text string) []Node {
	lines := strings.Split(text, "\n")
	nodes := make([]Node, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			nodes = append(nodes, Node{Kind: KindParagraph, Text: ""})
			continue
		}

		if m := headingPrefix.FindStringSubmatch(trimmed); m != nil {
			nodes = append(nodes, Node{
				Kind:  KindHeading,
				Level: len(m[1]),
				Text:  m[2],
			})
			continue
		}

		if m := bulletPrefix.FindStringSubmatch(trimmed); m != nil {
			nodes = append(nodes, Node{Kind: KindBulletList, Text: m[1]})
			continue
		}

		nodes = append(nodes, Node{Kind: KindParagraph, Text: trimmed})
	}

	return nodes
}
