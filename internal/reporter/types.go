// Package reporter は課金クラウド（OCS/PCRF相当）へのクライアントを提供する。
package reporter

import "github.com/oyaguma3/session-gateway-poc/internal/session"

// CreateSessionRequest はセッション生成の課金クラウド向けリクエスト
type CreateSessionRequest struct {
	IMSI            string           `json:"imsi"`
	SessionID       string           `json:"session_id"`
	UeIPv4          string           `json:"ue_ipv4,omitempty"`
	SpgwIPv4        string           `json:"spgw_ipv4,omitempty"`
	APN             string           `json:"apn,omitempty"`
	MSISDN          string           `json:"msisdn,omitempty"`
	IMEI            string           `json:"imei,omitempty"`
	PLMNID          string           `json:"plmn_id,omitempty"`
	IMSIPLMNID      string           `json:"imsi_plmn_id,omitempty"`
	UserLocation    string           `json:"user_location,omitempty"`
	RATType         uint32           `json:"rat_type"`
	HardwareAddr    string           `json:"hardware_addr,omitempty"`
	RadiusSessionID string           `json:"radius_session_id,omitempty"`
	BearerID        uint32           `json:"bearer_id,omitempty"`
	QoS             *session.QoSInfo `json:"qos,omitempty"`
}

// CreateSessionResponse はセッション生成の応答。
// 初期クレジット付与とルール対応を含む。
type CreateSessionResponse struct {
	Credits  []session.CreditGrant  `json:"credits"`
	Monitors []session.MonitorGrant `json:"monitors"`
}

// UpdateSessionRequest は蓄積された使用量更新のバッチ
type UpdateSessionRequest struct {
	Updates  []session.UsageUpdate   `json:"updates"`
	Monitors []session.MonitorUpdate `json:"monitors"`
}

// Empty はバッチが空かどうかを返す。
func (r *UpdateSessionRequest) Empty() bool {
	return len(r.Updates) == 0 && len(r.Monitors) == 0
}

// CreditUpdateResponse は1課金キー分の更新応答
type CreditUpdateResponse struct {
	SessionID    string `json:"session_id"`
	IMSI         string `json:"imsi"`
	ChargingKey  uint32 `json:"charging_key"`
	Success      bool   `json:"success"`
	GrantedBytes uint64 `json:"granted_bytes"`
}

// MonitorUpdateResponse は1モニタキー分の更新応答
type MonitorUpdateResponse struct {
	SessionID     string `json:"session_id"`
	IMSI          string `json:"imsi"`
	MonitoringKey string `json:"monitoring_key"`
	Success       bool   `json:"success"`
	GrantedBytes  uint64 `json:"granted_bytes"`
}

// UpdateSessionResponse は使用量報告の応答
type UpdateSessionResponse struct {
	Responses []CreditUpdateResponse  `json:"responses"`
	Monitors  []MonitorUpdateResponse `json:"monitors"`
}

// TerminateRequest はセッション終了の最終報告
type TerminateRequest struct {
	IMSI      string                  `json:"imsi"`
	SessionID string                  `json:"session_id"`
	FinalTx   uint64                  `json:"final_tx"`
	FinalRx   uint64                  `json:"final_rx"`
	Updates   []session.UsageUpdate   `json:"updates,omitempty"`
	Monitors  []session.MonitorUpdate `json:"monitors,omitempty"`
}

// TerminateResponse はセッション終了報告の応答
type TerminateResponse struct {
	SessionID string `json:"session_id"`
}
