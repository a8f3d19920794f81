package handler

import (
	"errors"
	"net/http"

	"mawja-backend/internal/model"
	"mawja-backend/internal/service"
	"mawja-backend/internal/session"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	assistant *service.Assistant
	store     *session.Store
}

func NewChatHandler(assistant *service.Assistant, store *session.Store) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		store:     store,
	}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.assistant.SendMessage(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotConfigured):
			// the UI routes this to settings, not to a retry
			c.JSON(http.StatusPreconditionFailed, gin.H{
				"error": err.Error(),
				"type":  "not_configured",
			})
		case errors.Is(err, service.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{
		DocumentID: req.DocumentID,
		Section:    req.Section,
		Reply:      reply,
	})
}

func (h *ChatHandler) SwitchSession(c *gin.Context) {
	var req model.SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messages := h.assistant.SwitchSession(session.Key{
		DocumentID: req.DocumentID,
		Section:    req.Section,
	})

	c.JSON(http.StatusOK, gin.H{
		"document_id": req.DocumentID,
		"section":     req.Section,
		"messages":    messages,
	})
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	key := session.Key{
		DocumentID: c.Param("document_id"),
		Section:    c.Param("section"),
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": key.DocumentID,
		"section":     key.Section,
		"messages":    h.store.GetMessages(key),
	})
}

func (h *ChatHandler) ListSessions(c *gin.Context) {
	documentID := c.Param("document_id")

	sessions := h.store.ListSessionsForDocument(documentID)
	summaries := make([]model.SessionSummary, len(sessions))
	for i, sess := range sessions {
		summaries[i] = model.SessionSummary{
			ID:           sess.ID,
			DocumentID:   sess.DocumentID,
			Section:      sess.Section,
			SectionLabel: session.SectionLabel(sess.Section),
			MessageCount: len(sess.Messages),
			CreatedAt:    sess.CreatedAt,
			LastAccessed: sess.LastAccessed,
		}
	}

	c.JSON(http.StatusOK, gin.H{"sessions": summaries})
}

func (h *ChatHandler) ClearSession(c *gin.Context) {
	key := session.Key{
		DocumentID: c.Param("document_id"),
		Section:    c.Param("section"),
	}

	if err := h.store.ClearSession(key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session cleared"})
}

func (h *ChatHandler) CopyMessage(c *gin.Context) {
	var req model.CopyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from := session.Key{DocumentID: req.FromDocumentID, Section: req.FromSection}
	to := session.Key{DocumentID: req.ToDocumentID, Section: req.ToSection}

	msg, ok := h.store.FindMessage(from, req.MessageID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found in source session"})
		return
	}

	clone := h.store.CopyMessage(msg, from, to)

	c.JSON(http.StatusOK, gin.H{
		"message": clone,
		"to":      to.StorageID(),
	})
}
