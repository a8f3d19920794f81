package model

type ChatRequest struct {
	DocumentID string      `json:"document_id" binding:"required"`
	Section    string      `json:"section" binding:"required"`
	Message    string      `json:"message" binding:"required"`
	Document   Document    `json:"document"`
	Podcast    PodcastMeta `json:"podcast"`
	Episode    EpisodeMeta `json:"episode"`
}

type SwitchRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	Section    string `json:"section" binding:"required"`
}

type CopyMessageRequest struct {
	MessageID      string `json:"message_id" binding:"required"`
	FromDocumentID string `json:"from_document_id" binding:"required"`
	FromSection    string `json:"from_section" binding:"required"`
	ToDocumentID   string `json:"to_document_id" binding:"required"`
	ToSection      string `json:"to_section" binding:"required"`
}

// ResponseContext is the optional UI context supplied when classifying an
// assistant reply.
type ResponseContext struct {
	DocumentType   string `json:"document_type"`
	CurrentSection string `json:"current_section"`
	SelectedText   string `json:"selected_text"`
}

type ProcessRequest struct {
	Content string          `json:"content" binding:"required"`
	Context ResponseContext `json:"context"`
}

type NodesRequest struct {
	Text string `json:"text" binding:"required"`
}

type ExportRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}
