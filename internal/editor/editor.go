package editor

import (
	"fmt"

	"mawja-backend/pkg/logger"
)

// Range is a selection in the rich-text surface.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Surface is the rich-text editor boundary. InsertNodes inserts at the
// given selection, or at the document end when at is nil.
type Surface interface {
	SelectionRange() (Range, bool)
	InsertNodes(at *Range, nodes []Node) error
	ReadFullText() string
}

// Result is the insertion outcome. Insertion never panics or returns a Go
// error to callers; the caller decides the fallback (typically append to
// end) off the Success flag.
type Result struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	NodesInserted int    `json:"nodes_inserted"`
}

// Cursor-context placeholders. The resolver does not walk heading ancestry;
// these two constants are the documented baseline behavior.
const (
	contextInDocument  = "داخل المستند"
	contextNoSelection = "غير محدد"
)

// InsertAtCursor converts text to nodes and inserts them at the active
// selection. Fails with a descriptive message when no selection exists.
func InsertAtCursor(s Surface, text string) Result {
	rng, ok := s.SelectionRange()
	if !ok {
		return Result{
			Success: false,
			Message: "لا يوجد موضع مؤشر نشط في المحرر",
		}
	}

	nodes := TextToNodes(text)
	if err := s.InsertNodes(&rng, nodes); err != nil {
		logger.Errorf("Failed to insert nodes at cursor: %v", err)
		return Result{
			Success: false,
			Message: "تعذر إدراج المحتوى في المستند",
		}
	}

	return Result{
		Success:       true,
		Message:       fmt.Sprintf("تم إدراج %d عنصرًا", len(nodes)),
		NodesInserted: len(nodes),
	}
}

// InsertAtEnd appends the converted nodes at the document end regardless of
// the cursor.
func InsertAtEnd(s Surface, text string) Result {
	nodes := TextToNodes(text)
	if err := s.InsertNodes(nil, nodes); err != nil {
		logger.Errorf("Failed to append nodes: %v", err)
		return Result{
			Success: false,
			Message: "تعذر إدراج المحتوى في المستند",
		}
	}

	return Result{
		Success:       true,
		Message:       fmt.Sprintf("تم إدراج %d عنصرًا", len(nodes)),
		NodesInserted: len(nodes),
	}
}

// CursorContext reports a best-effort label for where the cursor sits.
func CursorContext(s Surface) string {
	if _, ok := s.SelectionRange(); ok {
		return contextInDocument
	}
	return contextNoSelection
}
