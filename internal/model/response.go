package model

import "time"

type ChatResponse struct {
	DocumentID string  `json:"document_id"`
	Section    string  `json:"section"`
	Reply      Message `json:"reply"`
}

type SessionSummary struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"document_id"`
	Section      string    `json:"section"`
	SectionLabel string    `json:"section_label"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}
