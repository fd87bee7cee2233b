package server

import (
	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/session-gateway-poc/internal/handler"
)

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *handler.SessionHandler) {
	// ヘルスチェック
	engine.GET("/health", h.HandleHealth)

	// API v1
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/sessions", h.HandleCreateSession)
		v1.POST("/rule-stats", h.HandleReportRuleStats)
		v1.DELETE("/sessions/:imsi", h.HandleEndSession)
	}
}
