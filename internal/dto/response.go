package dto

// CreateSessionResponse はセッション生成レスポンスを表す。
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// AggregateResponse は使用量レポート受理レスポンスを表す。
type AggregateResponse struct {
	Accepted int `json:"accepted"`
}

// HealthResponse はヘルスチェックレスポンスを表す。
type HealthResponse struct {
	Status string `json:"status"`
}
