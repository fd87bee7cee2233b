// Package dto はリクエスト・レスポンスのデータ転送オブジェクトを定義する。
package dto

// QoS はセッション生成時のQoS記述子を表す。
type QoS struct {
	ClassID int32 `json:"class_id"`
}

// CreateSessionRequest はセッション生成リクエストを表す。
type CreateSessionRequest struct {
	IMSI            string `json:"imsi" binding:"required"`
	UeIPv4          string `json:"ue_ipv4,omitempty"`
	SpgwIPv4        string `json:"spgw_ipv4,omitempty"`
	APN             string `json:"apn,omitempty"`
	MSISDN          string `json:"msisdn,omitempty"`
	IMEI            string `json:"imei,omitempty"`
	PLMNID          string `json:"plmn_id,omitempty"`
	IMSIPLMNID      string `json:"imsi_plmn_id,omitempty"`
	UserLocation    string `json:"user_location,omitempty"`
	RATType         uint32 `json:"rat_type"`
	HardwareAddr    string `json:"hardware_addr,omitempty"` // hex文字列
	RadiusSessionID string `json:"radius_session_id,omitempty"`
	BearerID        uint32 `json:"bearer_id,omitempty"`
	QoS             *QoS   `json:"qos,omitempty"`
}

// RuleRecord はフロー制御プレーンが報告するルール単位の使用量を表す。
type RuleRecord struct {
	IMSI    string `json:"imsi" binding:"required"`
	RuleID  string `json:"rule_id" binding:"required"`
	BytesTx uint64 `json:"bytes_tx"`
	BytesRx uint64 `json:"bytes_rx"`
}

// RuleRecordTable は使用量レポートの1バッチを表す。
type RuleRecordTable struct {
	Epoch   uint64       `json:"epoch"`
	Records []RuleRecord `json:"records"`
}
