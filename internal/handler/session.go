// Package handler はHTTPリクエストハンドラーを提供する。
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/oyaguma3/session-gateway-poc/internal/dto"
	"github.com/oyaguma3/session-gateway-poc/internal/logging"
	"github.com/oyaguma3/session-gateway-poc/internal/manager"
)

// TraceIDKey はコンテキストにTraceIDを格納するキー。
const TraceIDKey = "trace_id"

// SessionHandler はセッション管理APIのハンドラー。
type SessionHandler struct {
	mgr    manager.SessionManagerInterface
	cfg    *config.Config
	masker *logging.Masker
}

// NewSessionHandler は新しいSessionHandlerを生成する。
func NewSessionHandler(mgr manager.SessionManagerInterface, cfg *config.Config) *SessionHandler {
	return &SessionHandler{
		mgr:    mgr,
		cfg:    cfg,
		masker: logging.NewMasker(cfg.LogMaskIMSI),
	}
}

// HandleCreateSession はPOST /api/v1/sessions のハンドラー。
func (h *SessionHandler) HandleCreateSession(c *gin.Context) {
	traceID, _ := c.Get(TraceIDKey)
	ctx := c.Request.Context()

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid request body",
			"trace_id", traceID,
			"event_id", "SESSION_CREATE_ERR",
			"error", err.Error(),
		)
		c.JSON(http.StatusBadRequest, dto.NewProblemDetail(
			http.StatusBadRequest,
			"Bad Request",
			"Invalid request body",
		).WithInstance(c.Request.URL.Path))
		return
	}

	if err := validateIMSI(req.IMSI); err != nil {
		slog.Warn("invalid IMSI format",
			"trace_id", traceID,
			"event_id", "SESSION_CREATE_ERR",
			"imsi", h.masker.IMSI(req.IMSI),
			"error", err.Error(),
		)
		c.JSON(http.StatusBadRequest, dto.NewProblemDetail(
			http.StatusBadRequest,
			"Bad Request",
			"IMSI must be 15 digits",
		).WithInstance(c.Request.URL.Path))
		return
	}

	resp, err := h.mgr.CreateSession(ctx, &req)
	if err != nil {
		h.handleError(c, traceID, req.IMSI, err)
		return
	}

	slog.Info("session create accepted",
		"trace_id", traceID,
		"event_id", "SESSION_CREATE_OK",
		"imsi", h.masker.IMSI(req.IMSI),
		"session_id", resp.SessionID,
		"http_status", http.StatusCreated,
	)
	c.JSON(http.StatusCreated, resp)
}

// HandleReportRuleStats はPOST /api/v1/rule-stats のハンドラー。
// 取り込みは非同期で行われるため、受理のみを返す。
func (h *SessionHandler) HandleReportRuleStats(c *gin.Context) {
	traceID, _ := c.Get(TraceIDKey)

	var tbl dto.RuleRecordTable
	if err := c.ShouldBindJSON(&tbl); err != nil {
		slog.Warn("invalid rule stats body",
			"trace_id", traceID,
			"event_id", "RULE_STATS_ERR",
			"error", err.Error(),
		)
		c.JSON(http.StatusBadRequest, dto.NewProblemDetail(
			http.StatusBadRequest,
			"Bad Request",
			"Invalid request body",
		).WithInstance(c.Request.URL.Path))
		return
	}

	h.mgr.ReportRuleStats(&tbl)

	c.JSON(http.StatusAccepted, dto.AggregateResponse{Accepted: len(tbl.Records)})
}

// HandleEndSession はDELETE /api/v1/sessions/:imsi のハンドラー。
func (h *SessionHandler) HandleEndSession(c *gin.Context) {
	traceID, _ := c.Get(TraceIDKey)
	imsi := c.Param("imsi")

	if err := validateIMSI(imsi); err != nil {
		slog.Warn("invalid IMSI format",
			"trace_id", traceID,
			"event_id", "SESSION_END_ERR",
			"imsi", h.masker.IMSI(imsi),
			"error", err.Error(),
		)
		c.JSON(http.StatusBadRequest, dto.NewProblemDetail(
			http.StatusBadRequest,
			"Bad Request",
			"IMSI must be 15 digits",
		).WithInstance(c.Request.URL.Path))
		return
	}

	if err := h.mgr.EndSession(imsi); err != nil {
		h.handleError(c, traceID, imsi, err)
		return
	}

	slog.Info("session end accepted",
		"trace_id", traceID,
		"event_id", "SESSION_END_OK",
		"imsi", h.masker.IMSI(imsi),
		"http_status", http.StatusAccepted,
	)
	c.Status(http.StatusAccepted)
}

// handleError はエラーレスポンスを処理する。
func (h *SessionHandler) handleError(c *gin.Context, traceID any, imsi string, err error) {
	var problemErr *manager.ProblemError
	if errors.As(err, &problemErr) {
		slog.Log(c.Request.Context(), problemErr.LogLevel(), problemErr.Message,
			"trace_id", traceID,
			"event_id", problemErr.EventID,
			"imsi", h.masker.IMSI(imsi),
			"http_status", problemErr.Status,
		)
		c.JSON(problemErr.Status, problemErr.ToProblemDetail().WithInstance(c.Request.URL.Path))
		return
	}

	// 予期しないエラー
	slog.Error("unexpected error",
		"trace_id", traceID,
		"event_id", "SESSION_ERR",
		"imsi", h.masker.IMSI(imsi),
		"error", err.Error(),
	)
	c.JSON(http.StatusInternalServerError, dto.NewProblemDetail(
		http.StatusInternalServerError,
		"Internal Server Error",
		"An unexpected error occurred",
	).WithInstance(c.Request.URL.Path))
}

// validateIMSI はIMSI形式を検証する。
func validateIMSI(imsi string) error {
	if len(imsi) != 15 {
		return fmt.Errorf("IMSI must be 15 digits, got %d", len(imsi))
	}
	for _, c := range imsi {
		if c < '0' || c > '9' {
			return fmt.Errorf("IMSI must contain only digits")
		}
	}
	return nil
}
