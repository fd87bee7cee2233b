package pipelined

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponse は応答の解析失敗エラー
	ErrInvalidResponse = errors.New("invalid pipelined response")
)

// ConnectionError はフロー制御プレーンへの接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("pipelined connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// APIError はフロー制御プレーンからのHTTPエラー応答を表す
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pipelined API error: status=%d message=%s", e.StatusCode, e.Message)
}
