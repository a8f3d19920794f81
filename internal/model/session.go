package model

import "time"

// Section keys. A session is identified by (document, section); "global"
// holds conversation that is not tied to one document kind.
const (
	SectionConcept     = "concept"
	SectionPreparation = "preparation"
	SectionScript      = "script"
	SectionGlobal      = "global"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Session struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"document_id"`
	Section      string    `json:"section"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Document is owned by the editor frontend. The assistant reads its content
// and section breakdown when building prompt context but never mutates it.
type Document struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Content    string            `json:"content"`
	Sections   map[string]string `json:"sections,omitempty"`
	ModifiedAt time.Time         `json:"modified_at"`
}

// PodcastMeta carries the show-level branding block included in every
// system prompt.
type PodcastMeta struct {
	ShowName   string   `json:"show_name"`
	Tone       string   `json:"tone"`
	Styles     []string `json:"styles"`
	Audience   string   `json:"audience"`
	BrandVoice string   `json:"brand_voice"`
	HostName   string   `json:"host_name,omitempty"`
}

type EpisodeMeta struct {
	ContentType     string `json:"content_type"`
	Duration        string `json:"duration"`
	Goals           string `json:"goals"`
	SuccessCriteria string `json:"success_criteria"`
}
