package response

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"mawja-backend/internal/model"
	"mawja-backend/internal/session"
)

// ContentType is the category inferred for a raw assistant reply. It drives
// formatting, the insertion strategy, and which actions the UI offers.
type ContentType string

const (
	TypeText    ContentType = "text"
	TypeList    ContentType = "list"
	TypeScript  ContentType = "script"
	TypeOutline ContentType = "outline"
)

// Insertion modes.
const (
	ModeCursor  = "cursor"
	ModeAppend  = "append"
	ModeSection = "section"
	ModeReplace = "replace"
)

type Action struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type Strategy struct {
	Mode           string `json:"mode"`
	TargetLocation string `json:"target_location"`
	Formatting     string `json:"formatting"`
}

// Processed is recomputed on every render from the raw reply plus UI
// context. Nothing here is persisted.
type Processed struct {
	ContentType      ContentType `json:"content_type"`
	FormattedContent string      `json:"formatted_content"`
	SuggestedActions []Action    `json:"suggested_actions"`
	Strategy         Strategy    `json:"insertion_strategy"`
	Confidence       float64     `json:"confidence"`
}

var (
	speakerPattern = regexp.MustCompile(`(?m)^[^:\n]+:`)
	roleMarkers    = regexp.MustCompile(`(?i)host|guest|مقدم|ضيف`)
	hyphenLine     = regexp.MustCompile(`(?m)^\s*-\s`)
	numberedLine   = regexp.MustCompile(`(?m)^\s*\d+\.`)
	bulletOrNumber = regexp.MustCompile(`^\s*([-*•]|\d+\.)\s`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// classification rules in precedence order, first match wins. The order is
// a contract: a bulleted dialogue is a script, not a list.
var rules = []struct {
	contentType ContentType
	match       func(string) bool
}{
	{TypeScript, isScript},
	{TypeList, isList},
	{TypeOutline, isOutline},
}

func Classify(text string) ContentType {
	for _, rule := range rules {
		if rule.match(text) {
			return rule.contentType
		}
	}
	return TypeText
}

func isScript(text string) bool {
	return speakerPattern.MatchString(text) && roleMarkers.MatchString(text)
}

func isList(text string) bool {
	return strings.Contains(text, "•") ||
		hyphenLine.MatchString(text) ||
		numberedLine.MatchString(text)
}

func isOutline(text string) bool {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			count++
		}
	}
	return count > 2
}

// Format rewrites text consistently with its category, line by line.
func Format(text string, contentType ContentType) string {
	switch contentType {
	case TypeList:
		return formatList(text)
	case TypeScript:
		return formatScript(text)
	case TypeOutline:
		return formatOutline(text)
	default:
		return formatParagraphs(text)
	}
}

// formatList bullet-prefixes every non-empty line that is not already
// marked; marked lines and blanks pass through.
func formatList(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if bulletOrNumber.MatchString(line) {
			continue
		}
		lines[i] = "• " + line
	}
	return strings.Join(lines, "\n")
}

// formatScript bold-wraps speaker lines (any line with a colon) that are
// not already wrapped.
func formatScript(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, ":") {
			continue
		}
		if strings.HasPrefix(line, "**") {
			continue
		}
		lines[i] = "**" + line + "**"
	}
	return strings.Join(lines, "\n")
}

// formatOutline inserts a blank line after a heading run for visual
// separation; everything else passes through.
func formatOutline(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	prevHeading := false
	for _, line := range lines {
		heading := strings.HasPrefix(line, "#")
		if prevHeading && !heading && strings.TrimSpace(line) != "" {
			out = append(out, "")
		}
		out = append(out, line)
		prevHeading = heading
	}
	return strings.Join(out, "\n")
}

// formatParagraphs normalizes paragraph spacing: trim each blank-line
// delimited block, drop empty ones, rejoin with single blank lines. No
// sentence-level reflow.
func formatParagraphs(text string) string {
	blocks := paragraphSplit.Split(text, -1)
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		out = append(out, block)
	}
	return strings.Join(out, "\n\n")
}

// Confidence is a display-only heuristic score in [0, 1]. It is never used
// for control flow and carries no statistical meaning.
func Confidence(text string) float64 {
	score := 0.5

	if strings.Contains(text, "#") || strings.Contains(text, "•") || strings.Contains(text, "-") {
		score += 0.2
	}
	if utf8.RuneCountInString(text) > 200 {
		score += 0.1
	}
	if containsArabic(text) {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func containsArabic(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// DetermineStrategy picks the recommended placement for the reply. Replacing
// an active selection wins over everything; scripts go to the cursor,
// outlines to a section, and plain content falls through to the cursor
// default. Structured content keeps its markup, so formatting is always
// markdown.
func DetermineStrategy(text string, ctx model.ResponseContext) Strategy {
	if ctx.SelectedText != "" {
		return Strategy{Mode: ModeReplace, TargetLocation: "النص المحدد", Formatting: "markdown"}
	}

	switch Classify(text) {
	case TypeScript:
		return Strategy{Mode: ModeCursor, TargetLocation: "موضع المؤشر", Formatting: "markdown"}
	case TypeOutline:
		target := ctx.CurrentSection
		if target == "" {
			target = "القسم الحالي"
		} else {
			target = session.SectionLabel(target)
		}
		return Strategy{Mode: ModeSection, TargetLocation: target, Formatting: "markdown"}
	default:
		return Strategy{Mode: ModeCursor, TargetLocation: "موضع المؤشر", Formatting: "markdown"}
	}
}

// SuggestedActions builds the ordered action menu. The first entry renders
// as the primary button in the UI, so insert-at-cursor always leads and
// append-to-end always closes the list.
func SuggestedActions(text string, ctx model.ResponseContext) []Action {
	actions := []Action{
		{
			Type:        "insert_cursor",
			Label:       "إدراج عند المؤشر",
			Description: "إدراج المحتوى في موضع المؤشر الحالي",
		},
	}

	contentType := Classify(text)
	if contentType == TypeOutline || contentType == TypeScript {
		actions = append(actions, Action{
			Type:        "new_section",
			Label:       "إنشاء قسم جديد",
			Description: "إضافة المحتوى كقسم جديد في المستند",
		})
	}

	if ctx.SelectedText != "" {
		actions = append(actions, Action{
			Type:        "replace_selection",
			Label:       "استبدال التحديد",
			Description: "استبدال النص المحدد بالمحتوى المقترح",
		})
	}

	actions = append(actions, Action{
		Type:        "append_end",
		Label:       "إضافة إلى النهاية",
		Description: "إلحاق المحتوى بنهاية المستند",
	})

	return actions
}

// Process derives everything the UI needs to render one assistant reply.
// Pure function of (content, context).
func Process(content string, ctx model.ResponseContext) Processed {
	contentType := Classify(content)
	return Processed{
		ContentType:      contentType,
		FormattedContent: Format(content, contentType),
		SuggestedActions: SuggestedActions(content, ctx),
		Strategy:         DetermineStrategy(content, ctx),
		Confidence:       Confidence(content),
	}
}
