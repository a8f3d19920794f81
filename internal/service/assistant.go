package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"mawja-backend/internal/config"
	"mawja-backend/internal/model"
	"mawja-backend/internal/session"
	"mawja-backend/pkg/logger"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

var (
	// ErrBusy rejects a send while another is still in flight.
	ErrBusy = errors.New("a message is already being processed")

	ErrEmptyMessage = errors.New("message is empty")
)

// apologyMessage is persisted as a normal assistant turn when the
// completion call fails, so the failure stays visible in history.
const apologyMessage = "عذراً، حدث خطأ أثناء معالجة طلبك. يرجى المحاولة مرة أخرى."

// Assistant orchestrates the conversation for the active (document,
// section) pair: it gates sends, persists both turns, and keeps the live
// display list in sync with the store.
//
// The live list is a read-through copy only; the session store stays the
// source of truth and the list is rebuilt from it on every section switch.
type Assistant struct {
	store         *session.Store
	completion    einoModel.ChatModel
	historyWindow int

	mu      sync.Mutex
	active  session.Key
	live    []model.Message
	sending bool
}

func NewAssistant(store *session.Store, completion einoModel.ChatModel, cfg config.SessionConfig) *Assistant {
	return &Assistant{
		store:         store,
		completion:    completion,
		historyWindow: cfg.HistoryWindow,
	}
}

// SwitchSession makes key the active conversation and reloads its messages
// from the store. An in-flight send for the previous key is not cancelled;
// it completes against the key it started with.
func (a *Assistant) SwitchSession(key session.Key) []model.Message {
	messages := a.store.GetMessages(key)

	a.mu.Lock()
	a.active = key
	a.live = messages
	a.mu.Unlock()

	return messages
}

// LiveMessages returns the display list for the active session.
func (a *Assistant) LiveMessages() []model.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]model.Message, len(a.live))
	copy(out, a.live)
	return out
}

// SendMessage runs one full turn: persist the user message, call the
// completion backend with the assembled prompt, persist the reply. A
// backend failure is converted into the apology turn and is not an error;
// only gating, validation, and missing configuration are.
func (a *Assistant) SendMessage(ctx context.Context, req model.ChatRequest) (model.Message, error) {
	trimmed := strings.TrimSpace(req.Message)
	if trimmed == "" {
		return model.Message{}, ErrEmptyMessage
	}

	// surfaced before anything is persisted so the UI can point the user
	// at settings instead of retrying
	if a.completion == nil {
		return model.Message{}, model.ErrNotConfigured
	}

	key := session.Key{DocumentID: req.DocumentID, Section: req.Section}

	a.mu.Lock()
	if a.sending {
		a.mu.Unlock()
		return model.Message{}, ErrBusy
	}
	a.sending = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.sending = false
		a.mu.Unlock()
	}()

	userMsg := model.Message{
		ID:        uuid.New().String(),
		Role:      model.RoleUser,
		Content:   trimmed,
		Timestamp: time.Now(),
	}

	if err := a.store.AppendMessage(key, userMsg); err != nil {
		logger.Errorf("Failed to persist user message for %s: %v", key.StorageID(), err)
	}
	a.appendLive(key, userMsg)

	reply, err := a.completion.Generate(ctx, a.buildPrompt(req, key))

	content := apologyMessage
	if err != nil {
		logger.Errorf("Completion call failed for %s: %v", key.StorageID(), err)
	} else {
		content = reply.Content
	}

	assistantMsg := model.Message{
		ID:        uuid.New().String(),
		Role:      model.RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}

	if err := a.store.AppendMessage(key, assistantMsg); err != nil {
		logger.Errorf("Failed to persist assistant message for %s: %v", key.StorageID(), err)
	}
	a.appendLive(key, assistantMsg)

	return assistantMsg, nil
}

// appendLive mirrors a persisted message into the display list, but only
// when the message belongs to the currently active session. A send whose
// session was switched away from still persists; it just stops rendering.
func (a *Assistant) appendLive(key session.Key, msg model.Message) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active == key {
		a.live = append(a.live, msg)
	}
}

// buildPrompt assembles the outbound request: one system message plus the
// trailing window of the session's history, oldest first. The window
// includes the user turn just appended.
func (a *Assistant) buildPrompt(req model.ChatRequest, key session.Key) []*schema.Message {
	history := a.store.GetMessages(key)
	if len(history) > a.historyWindow {
		history = history[len(history)-a.historyWindow:]
	}

	messages := make([]*schema.Message, 0, len(history)+1)
	messages = append(messages, &schema.Message{
		Role:    schema.System,
		Content: buildSystemPrompt(req),
	})

	for _, msg := range history {
		role := schema.User
		if msg.Role == model.RoleAssistant {
			role = schema.Assistant
		}
		messages = append(messages, &schema.Message{
			Role:    role,
			Content: msg.Content,
		})
	}

	return messages
}
