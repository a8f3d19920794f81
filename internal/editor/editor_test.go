package editor

import (
	"errors"
	"strings"
	"testing"
)

// fakeSurface records insertions and simulates selection state.
type fakeSurface struct {
	selection    *Range
	text         string
	inserted     []Node
	insertedAt   *Range
	insertErr    error
	insertCalled bool
}

func (f *fakeSurface) SelectionRange() (Range, bool) {
	if f.selection == nil {
		return Range{}, false
	}
	return *f.selection, true
}

func (f *fakeSurface) InsertNodes(at *Range, nodes []Node) error {
	f.insertCalled = true
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedAt = at
	f.inserted = append(f.inserted, nodes...)
	return nil
}

func (f *fakeSurface) ReadFullText() string { return f.text }

func TestInsertAtCursorWithSelection(t *testing.T) {
	surface := &fakeSurface{selection: &Range{Start: 4, End: 4}}

	result := InsertAtCursor(surface, "# عنوان\nفقرة")

	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if result.NodesInserted != 2 {
		t.Errorf("nodes inserted = %d, want 2", result.NodesInserted)
	}
	if surface.insertedAt == nil || surface.insertedAt.Start != 4 {
		t.Errorf("insertion did not target the selection: %+v", surface.insertedAt)
	}
	if len(surface.inserted) != 2 || surface.inserted[0].Kind != KindHeading {
		t.Errorf("unexpected nodes: %+v", surface.inserted)
	}
}

func TestInsertAtCursorWithoutSelection(t *testing.T) {
	surface := &fakeSurface{text: "محتوى قائم"}

	result := InsertAtCursor(surface, "نص جديد")

	if result.Success {
		t.Fatal("expected failure when no selection is active")
	}
	if strings.TrimSpace(result.Message) == "" {
		t.Error("failure must carry a descriptive message")
	}
	if surface.insertCalled {
		t.Error("document must not be touched without a selection")
	}
	if surface.ReadFullText() != "محتوى قائم" {
		t.Error("document content changed")
	}
}

func TestInsertAtCursorSurfaceError(t *testing.T) {
	surface := &fakeSurface{
		selection: &Range{Start: 0, End: 0},
		insertErr: errors.New("surface gone"),
	}

	result := InsertAtCursor(surface, "نص")

	if result.Success {
		t.Fatal("expected failure when the surface rejects the insert")
	}
	if result.NodesInserted != 0 {
		t.Errorf("nodes inserted = %d, want 0", result.NodesInserted)
	}
}

func TestInsertAtEndIgnoresCursor(t *testing.T) {
	surface := &fakeSurface{selection: &Range{Start: 2, End: 5}}

	result := InsertAtEnd(surface, "- بند")

	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if surface.insertedAt != nil {
		t.Errorf("append must pass a nil range, got %+v", surface.insertedAt)
	}
	if len(surface.inserted) != 1 || surface.inserted[0].Kind != KindBulletList {
		t.Errorf("unexpected nodes: %+v", surface.inserted)
	}
}

func TestCursorContext(t *testing.T) {
	withSelection := &fakeSurface{selection: &Range{Start: 1, End: 1}}
	without := &fakeSurface{}

	inDoc := CursorContext(withSelection)
	noSel := CursorContext(without)

	if inDoc == "" || noSel == "" {
		t.Fatal("context labels must be non-empty")
	}
	if inDoc == noSel {
		t.Errorf("expected distinct labels, both %q", inDoc)
	}
}
