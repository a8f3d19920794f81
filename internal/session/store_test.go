package session

import (
	"fmt"
	"testing"
	"time"

	"mawja-backend/internal/model"
	"mawja-backend/internal/storage"
)

func newTestStore() *Store {
	return NewStore(storage.NewMemoryStore(), 50)
}

func userMessage(content string) model.Message {
	return model.Message{
		ID:        "m-" + content,
		Role:      model.RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func TestGetOrCreateSessionIsIdempotent(t *testing.T) {
	store := newTestStore()
	key := Key{DocumentID: "doc1", Section: model.SectionConcept}

	first := store.GetOrCreateSession(key)
	second := store.GetOrCreateSession(key)

	if first.ID != second.ID {
		t.Errorf("expected same session id, got %q and %q", first.ID, second.ID)
	}
	if first.ID != "doc1_concept" {
		t.Errorf("expected derived id doc1_concept, got %q", first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("createdAt changed on second access")
	}
}

func TestGetMessagesNeverFails(t *testing.T) {
	store := newTestStore()

	messages := store.GetMessages(Key{DocumentID: "never", Section: "used"})
	if messages == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestRetentionCapKeepsMostRecent(t *testing.T) {
	store := newTestStore()
	key := Key{DocumentID: "doc1", Section: model.SectionConcept}

	for i := 0; i < 60; i++ {
		if err := store.AppendMessage(key, userMessage(fmt.Sprintf("%d", i))); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	messages := store.GetMessages(key)
	if len(messages) != 50 {
		t.Fatalf("expected 50 messages after cap, got %d", len(messages))
	}
	if messages[0].Content != "10" {
		t.Errorf("expected oldest retained message to be 10, got %q", messages[0].Content)
	}
	if messages[49].Content != "59" {
		t.Errorf("expected newest message to be 59, got %q", messages[49].Content)
	}
	for i := 1; i < len(messages); i++ {
		prev, cur := messages[i-1].Content, messages[i].Content
		var a, b int
		fmt.Sscanf(prev, "%d", &a)
		fmt.Sscanf(cur, "%d", &b)
		if b != a+1 {
			t.Fatalf("relative order broken at %d: %q then %q", i, prev, cur)
		}
	}
}

func TestSessionIsolation(t *testing.T) {
	store := newTestStore()
	keyA := Key{DocumentID: "doc1", Section: model.SectionConcept}
	keyB := Key{DocumentID: "doc1", Section: model.SectionScript}
	keyC := Key{DocumentID: "doc2", Section: model.SectionConcept}

	store.AppendMessage(keyB, userMessage("existing"))

	store.AppendMessage(keyA, userMessage("new"))

	if got := len(store.GetMessages(keyB)); got != 1 {
		t.Errorf("append to A changed B: expected 1 message, got %d", got)
	}
	if got := len(store.GetMessages(keyC)); got != 0 {
		t.Errorf("append to A changed C: expected 0 messages, got %d", got)
	}
}

func TestCopyMessageIsNonDestructive(t *testing.T) {
	store := newTestStore()
	from := Key{DocumentID: "doc1", Section: model.SectionConcept}
	to := Key{DocumentID: "doc1", Section: model.SectionScript}

	original := model.Message{
		ID:        "orig-1",
		Role:      model.RoleAssistant,
		Content:   "نقاط الحلقة",
		Timestamp: time.Now().Add(-time.Hour),
	}
	store.AppendMessage(from, original)
	store.AppendMessage(to, userMessage("already here"))

	clone := store.CopyMessage(original, from, to)

	source := store.GetMessages(from)
	if len(source) != 1 || source[0].ID != "orig-1" {
		t.Fatalf("source session changed by copy: %+v", source)
	}

	target := store.GetMessages(to)
	if len(target) != 2 {
		t.Fatalf("expected 2 messages in target, got %d", len(target))
	}

	if clone.Content != original.Content {
		t.Errorf("clone content = %q, want %q", clone.Content, original.Content)
	}
	if clone.Role != original.Role {
		t.Errorf("clone role = %q, want %q", clone.Role, original.Role)
	}
	if clone.ID == original.ID {
		t.Error("clone should have a fresh id")
	}
	if len(clone.ID) < 5 || clone.ID[:5] != "copy-" {
		t.Errorf("clone id %q should carry the copy- provenance prefix", clone.ID)
	}
	if !clone.Timestamp.After(original.Timestamp) {
		t.Error("clone should have a fresh timestamp")
	}
}

func TestListSessionsForDocumentSortsByLastAccessed(t *testing.T) {
	store := newTestStore()

	store.AppendMessage(Key{DocumentID: "doc1", Section: model.SectionConcept}, userMessage("a"))
	store.AppendMessage(Key{DocumentID: "doc1", Section: model.SectionScript}, userMessage("b"))
	store.AppendMessage(Key{DocumentID: "doc2", Section: model.SectionConcept}, userMessage("c"))

	// touch concept again so it becomes the most recent
	store.GetMessages(Key{DocumentID: "doc1", Section: model.SectionConcept})

	sessions := store.ListSessionsForDocument("doc1")
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions for doc1, got %d", len(sessions))
	}
	if sessions[0].Section != model.SectionConcept {
		t.Errorf("expected most recently accessed session first, got %q", sessions[0].Section)
	}
	for _, sess := range sessions {
		if sess.DocumentID != "doc1" {
			t.Errorf("session %q does not belong to doc1", sess.ID)
		}
	}
}

func TestClearSessionStartsFresh(t *testing.T) {
	store := newTestStore()
	key := Key{DocumentID: "doc1", Section: model.SectionConcept}

	store.AppendMessage(key, userMessage("old"))
	created := store.GetOrCreateSession(key)

	if err := store.ClearSession(key); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if got := len(store.GetMessages(key)); got != 0 {
		t.Fatalf("expected empty session after clear, got %d messages", got)
	}

	fresh := store.GetOrCreateSession(key)
	if fresh.CreatedAt.Before(created.CreatedAt) {
		t.Error("cleared session should be recreated, not restored")
	}
}

func TestStoreReloadsPersistedSessions(t *testing.T) {
	kv := storage.NewMemoryStore()

	first := NewStore(kv, 50)
	key := Key{DocumentID: "doc1", Section: model.SectionPreparation}
	first.AppendMessage(key, userMessage("persisted"))

	second := NewStore(kv, 50)
	messages := second.GetMessages(key)
	if len(messages) != 1 || messages[0].Content != "persisted" {
		t.Fatalf("expected persisted message after reload, got %+v", messages)
	}
}

func TestSectionLabel(t *testing.T) {
	known := []string{
		model.SectionConcept,
		model.SectionPreparation,
		model.SectionScript,
		model.SectionGlobal,
	}

	seen := make(map[string]bool)
	for _, section := range known {
		label := SectionLabel(section)
		if label == "" || label == section {
			t.Errorf("SectionLabel(%q) = %q, want a fixed display name", section, label)
		}
		if seen[label] {
			t.Errorf("label %q is not distinct", label)
		}
		seen[label] = true
	}

	if got := SectionLabel("unknown"); got != "unknown" {
		t.Errorf("SectionLabel(unknown) = %q, want passthrough", got)
	}
}
