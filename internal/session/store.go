package session

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"mawja-backend/internal/model"
	"mawja-backend/internal/storage"
	"mawja-backend/pkg/logger"

	"github.com/google/uuid"
)

// blobKey is the single storage key holding every session. The whole map is
// serialized on each mutation, matching the frontend's local-storage layout;
// concurrent writers (a second tab) lose updates last-writer-wins. That is a
// documented limitation of the format, not something this store works around.
const blobKey = "mawja_chat_sessions"

// Store owns all chat sessions. Sessions are created lazily on first access
// and live until explicitly cleared; each holds at most maxMessages recent
// messages.
type Store struct {
	kv          storage.KV
	maxMessages int
	mu          sync.Mutex
	sessions    map[string]*model.Session
}

// NewStore loads the persisted session map once. A corrupt or unreadable
// blob is logged and replaced with an empty map: conversation history is
// reconstructible, losing it must not block the editor.
func NewStore(kv storage.KV, maxMessages int) *Store {
	s := &Store{
		kv:          kv,
		maxMessages: maxMessages,
		sessions:    make(map[string]*model.Session),
	}

	data, ok, err := kv.Load(blobKey)
	if err != nil {
		logger.Errorf("Failed to load chat sessions: %v", err)
		return s
	}
	if !ok {
		return s
	}

	if err := json.Unmarshal(data, &s.sessions); err != nil {
		logger.Errorf("Failed to decode chat sessions, starting empty: %v", err)
		s.sessions = make(map[string]*model.Session)
	}

	return s
}

// persist writes the whole session map through to storage. Callers hold
// s.mu. Failures are logged and the in-memory state kept; the store is
// best-effort durable by design.
func (s *Store) persist() error {
	data, err := json.Marshal(s.sessions)
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrInvalidData, err)
	}

	if err := s.kv.Store(blobKey, data); err != nil {
		return err
	}

	return nil
}

// getOrCreate returns the session for key, creating it empty on first
// access. lastAccessed is refreshed either way. Callers hold s.mu.
func (s *Store) getOrCreate(key Key) *model.Session {
	id := key.StorageID()

	sess, exists := s.sessions[id]
	if !exists {
		now := time.Now()
		sess = &model.Session{
			ID:           id,
			DocumentID:   key.DocumentID,
			Section:      key.Section,
			Messages:     make([]model.Message, 0),
			CreatedAt:    now,
			LastAccessed: now,
		}
		s.sessions[id] = sess
	} else {
		sess.LastAccessed = time.Now()
	}

	return sess
}

// GetOrCreateSession returns a copy of the session for key, creating it if
// absent. Idempotent.
func (s *Store) GetOrCreateSession(key Key) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreate(key)
	if err := s.persist(); err != nil {
		logger.Errorf("Failed to persist session %s: %v", sess.ID, err)
	}

	return copySession(sess)
}

// GetMessages returns the conversation for key in insertion order. It never
// fails: a never-used key yields an empty slice and does not create a
// session.
func (s *Store) GetMessages(key Key) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[key.StorageID()]
	if !exists {
		return []model.Message{}
	}

	sess.LastAccessed = time.Now()

	out := make([]model.Message, len(sess.Messages))
	copy(out, sess.Messages)
	return out
}

// AppendMessage appends msg to the session for key, dropping the oldest
// messages beyond the retention cap. The in-memory append holds even when
// the write-through fails; the error is returned for callers that want to
// surface it.
func (s *Store) AppendMessage(key Key, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreate(key)
	sess.Messages = append(sess.Messages, msg)

	if len(sess.Messages) > s.maxMessages {
		trimmed := make([]model.Message, s.maxMessages)
		copy(trimmed, sess.Messages[len(sess.Messages)-s.maxMessages:])
		sess.Messages = trimmed
	}

	if err := s.persist(); err != nil {
		logger.Errorf("Failed to persist message in session %s: %v", sess.ID, err)
		return err
	}

	return nil
}

// CopyMessage clones msg into the session for `to` with a fresh id and
// timestamp. The source session is never touched: copy, not move. The
// "copy-" id prefix marks provenance. Persistence failure is logged and the
// clone still returned; the in-memory append is not rolled back.
func (s *Store) CopyMessage(msg model.Message, from, to Key) model.Message {
	clone := model.Message{
		ID:        "copy-" + uuid.New().String(),
		Role:      msg.Role,
		Content:   msg.Content,
		Timestamp: time.Now(),
	}

	if err := s.AppendMessage(to, clone); err != nil {
		logger.Errorf("Failed to copy message from %s to %s: %v", from.StorageID(), to.StorageID(), err)
	}

	return clone
}

// FindMessage looks up a message by id within one session.
func (s *Store) FindMessage(key Key, messageID string) (model.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[key.StorageID()]
	if !exists {
		return model.Message{}, false
	}

	for _, msg := range sess.Messages {
		if msg.ID == messageID {
			return msg, true
		}
	}

	return model.Message{}, false
}

// ListSessionsForDocument returns the document's sessions, most recently
// accessed first.
func (s *Store) ListSessionsForDocument(documentID string) []model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := make([]model.Session, 0)
	for _, sess := range s.sessions {
		if sess.DocumentID == documentID {
			sessions = append(sessions, copySession(sess))
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastAccessed.After(sessions[j].LastAccessed)
	})

	return sessions
}

// ClearSession deletes the session for key entirely; the next access starts
// a fresh one.
func (s *Store) ClearSession(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key.StorageID())

	if err := s.persist(); err != nil {
		logger.Errorf("Failed to persist after clearing session %s: %v", key.StorageID(), err)
		return err
	}

	return nil
}

func copySession(sess *model.Session) model.Session {
	out := *sess
	out.Messages = make([]model.Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	return out
}
