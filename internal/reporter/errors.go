package reporter

import (
	"errors"
	"fmt"
)

var (
	// ErrCircuitOpen はCircuit BreakerがOpen状態のエラー
	ErrCircuitOpen = errors.New("cloud reporter circuit breaker open")
	// ErrInvalidResponse は応答の解析失敗エラー
	ErrInvalidResponse = errors.New("invalid cloud response")
)

// ConnectionError は課金クラウドへの接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cloud connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// APIError は課金クラウドからのHTTPエラー応答を表す
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cloud API error: status=%d message=%s", e.StatusCode, e.Message)
}
