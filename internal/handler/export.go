package handler

import (
	"net/http"

	"mawja-backend/internal/export"
	"mawja-backend/internal/model"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	client *export.Client
}

func NewExportHandler(client *export.Client) *ExportHandler {
	return &ExportHandler{client: client}
}

func (h *ExportHandler) Export(c *gin.Context) {
	var req model.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := export.FromText(req.Title, req.Content)

	locator, err := h.client.Export(c.Request.Context(), doc)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locator": locator})
}
