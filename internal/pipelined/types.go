// Package pipelined はフロー制御プレーンへのクライアントを提供する。
package pipelined

// SetupResult はSetup応答の結果コード
type SetupResult string

const (
	// SetupSuccess はフロー状態の同期成功
	SetupSuccess SetupResult = "SUCCESS"
	// SetupFailure はフロー制御プレーン側での適用失敗
	SetupFailure SetupResult = "FAILURE"
	// SetupOutdatedEpoch は新しいエポックのSetupが先行済み
	SetupOutdatedEpoch SetupResult = "OUTDATED_EPOCH"
)

// ActiveSession はSetupで送出する1セッション分のフロー状態
type ActiveSession struct {
	IMSI      string   `json:"imsi"`
	SessionID string   `json:"session_id"`
	RuleIDs   []string `json:"rule_ids,omitempty"`
}

// SetupRequest はフロー制御プレーンへの全セッション状態の再送出
type SetupRequest struct {
	Epoch    uint64          `json:"epoch"`
	Sessions []ActiveSession `json:"sessions"`
}

// SetupResponse はSetupの応答
type SetupResponse struct {
	Result SetupResult `json:"result"`
}
