package handler

import (
	"net/http"

	"mawja-backend/internal/editor"
	"mawja-backend/internal/model"
	"mawja-backend/internal/response"

	"github.com/gin-gonic/gin"
)

// ResponseHandler serves the classification/formatting preview the UI
// renders under each assistant reply, and the node conversion the editor
// surface consumes when inserting.
type ResponseHandler struct{}

func NewResponseHandler() *ResponseHandler {
	return &ResponseHandler{}
}

func (h *ResponseHandler) Process(c *gin.Context) {
	var req model.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.Process(req.Content, req.Context))
}

func (h *ResponseHandler) ToNodes(c *gin.Context) {
	var req model.NodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nodes": editor.TextToNodes(req.Text)})
}
