package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/session-gateway-poc/internal/dto"
)

// HandleHealth はGET /health のハンドラー。
func (h *SessionHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
