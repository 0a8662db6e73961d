package openai

import (
	"net/http"
	"time"

	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
	common "github.com/aikoandre/Chutes-Proxy/internal/handlers/common"
	"github.com/gin-gonic/gin"
)

// ListModels handles GET /v1/models. The response preserves registry table
// order so clients see a stable listing.
func (h *Handler) ListModels(c *gin.Context) {
	entries := h.registry.List()
	created := time.Now().Unix()

	data := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		data = append(data, gin.H{
			"id":       e.DisplayName,
			"object":   "model",
			"created":  created,
			"owned_by": e.Owner(),
			"root":     e.UpstreamID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   data,
	})
}

// GetModel handles GET /v1/models/:id. Display names and upstream
// identifiers both resolve.
func (h *Handler) GetModel(c *gin.Context) {
	id := c.Param("id")
	entry, ok := h.registry.Lookup(id)
	if !ok {
		common.AbortWithAPIError(c, apperrors.NewUnknownModel(id))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       entry.DisplayName,
		"object":   "model",
		"created":  time.Now().Unix(),
		"owned_by": entry.Owner(),
		"root":     entry.UpstreamID,
	})
}
