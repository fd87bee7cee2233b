package session

// RuleRecord は1フローの使用量カウンタ（前回報告からの増分）
type RuleRecord struct {
	IMSI    string `json:"imsi"`
	RuleID  string `json:"rule_id"`
	BytesTx uint64 `json:"bytes_tx"`
	BytesRx uint64 `json:"bytes_rx"`
}

// UsageRecordTable は同一エポック下で収集された使用量レコードのバッチ。
// 取り込み時に所有権がLocal Enforcerへ移る。
type UsageRecordTable struct {
	Epoch   uint64       `json:"epoch"`
	Records []RuleRecord `json:"records"`
}
