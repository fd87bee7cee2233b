package manager

import (
	"log/slog"

	"github.com/oyaguma3/session-gateway-poc/internal/dto"
)

// ProblemError はビジネスロジックエラーを表す。
type ProblemError struct {
	Status  int
	Title   string
	Detail  string
	Message string // ログメッセージ
	EventID string
}

// Error はerrorインターフェースを実装する。
func (e *ProblemError) Error() string {
	return e.Detail
}

// ToProblemDetail はProblemDetailに変換する。
func (e *ProblemError) ToProblemDetail() *dto.ProblemDetail {
	return dto.NewProblemDetail(e.Status, e.Title, e.Detail)
}

// LogLevel はログレベルを返す。
func (e *ProblemError) LogLevel() slog.Level {
	switch {
	case e.Status >= 500:
		return slog.LevelError
	case e.Status == 404:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// 定義済みエラー
var (
	ErrInvalidHardwareAddr = &ProblemError{
		Status:  400,
		Title:   "Bad Request",
		Detail:  "hardware_addr must be a hex string",
		Message: "invalid hardware address",
		EventID: "SESSION_CREATE_ERR",
	}

	ErrBillingRejected = &ProblemError{
		Status:  412,
		Title:   "Precondition Failed",
		Detail:  "Billing cloud rejected session creation",
		Message: "session creation rejected by billing cloud",
		EventID: "SESSION_CREATE_ERR",
	}

	ErrSessionInitFailed = &ProblemError{
		Status:  412,
		Title:   "Precondition Failed",
		Detail:  "Session initialization failed",
		Message: "session initialization failed after billing accept",
		EventID: "SESSION_INIT_ERR",
	}

	ErrSessionNotFound = &ProblemError{
		Status:  404,
		Title:   "Session Not Found",
		Detail:  "No active session for subscriber",
		Message: "session not found",
		EventID: "SESSION_END_ERR",
	}
)
