// Package session はセッションのデータモデルとセッションテーブルを提供する。
package session

import "bytes"

// QoSInfo はセッションのQoS記述子を表す
type QoSInfo struct {
	Enabled bool  `json:"enabled"`
	ClassID int32 `json:"class_id"`
}

// Config はセッション生成時に確定し、以後変更されない属性の束。
// 重複セッション判定はこの構造体の完全一致で行う。
type Config struct {
	UeIPv4          string
	SpgwIPv4        string
	APN             string
	MSISDN          string
	IMEI            string
	PLMNID          string
	IMSIPLMNID      string
	UserLocation    string
	RATType         uint32
	MACAddr         string
	HardwareAddr    []byte
	RadiusSessionID string
	BearerID        uint32
	QoS             QoSInfo
}

// Equal は2つのConfigが完全一致するかを判定する。
func (c *Config) Equal(o *Config) bool {
	if o == nil {
		return false
	}
	return c.UeIPv4 == o.UeIPv4 &&
		c.SpgwIPv4 == o.SpgwIPv4 &&
		c.APN == o.APN &&
		c.MSISDN == o.MSISDN &&
		c.IMEI == o.IMEI &&
		c.PLMNID == o.PLMNID &&
		c.IMSIPLMNID == o.IMSIPLMNID &&
		c.UserLocation == o.UserLocation &&
		c.RATType == o.RATType &&
		c.MACAddr == o.MACAddr &&
		bytes.Equal(c.HardwareAddr, o.HardwareAddr) &&
		c.RadiusSessionID == o.RadiusSessionID &&
		c.BearerID == o.BearerID &&
		c.QoS == o.QoS
}

// UsageUpdate は課金クラウドへ未報告の使用量更新を表す
type UsageUpdate struct {
	SessionID string `json:"session_id"`
	IMSI      string `json:"imsi"`
	RuleID    string `json:"rule_id"`
	BytesTx   uint64 `json:"bytes_tx"`
	BytesRx   uint64 `json:"bytes_rx"`
}

// MonitorUpdate は使用量モニタの未報告更新を表す
type MonitorUpdate struct {
	SessionID     string `json:"session_id"`
	IMSI          string `json:"imsi"`
	MonitoringKey string `json:"monitoring_key"`
	BytesTx       uint64 `json:"bytes_tx"`
	BytesRx       uint64 `json:"bytes_rx"`
}

// Session は1加入者のアクティブセッションを表す。
// Local Enforcerのループ上でのみ変更される。
type Session struct {
	ID          string
	IMSI        string
	Config      Config
	Credit      CreditState
	Terminating bool

	// 累積使用量（終了時の最終報告に使用）
	TotalTx uint64
	TotalRx uint64

	StartTime int64

	// ルール単位で集約された未報告の使用量
	pending         map[string]*UsageUpdate
	pendingMonitors map[string]*MonitorUpdate
}

// New は新しいSessionを生成する。
func New(id, imsi string, cfg Config) *Session {
	return &Session{
		ID:              id,
		IMSI:            imsi,
		Config:          cfg,
		Credit:          NewCreditState(),
		pending:         make(map[string]*UsageUpdate),
		pendingMonitors: make(map[string]*MonitorUpdate),
	}
}

// AddUsage はルール単位の使用量を取り込み、未報告更新として蓄積する。
func (s *Session) AddUsage(ruleID string, tx, rx uint64) {
	s.TotalTx += tx
	s.TotalRx += rx

	u, ok := s.pending[ruleID]
	if !ok {
		u = &UsageUpdate{SessionID: s.ID, IMSI: s.IMSI, RuleID: ruleID}
		s.pending[ruleID] = u
	}
	u.BytesTx += tx
	u.BytesRx += rx
	s.Credit.chargeRule(ruleID, tx, rx)

	if mk, ok := s.Credit.monitorKeyFor(ruleID); ok {
		m, ok := s.pendingMonitors[mk]
		if !ok {
			m = &MonitorUpdate{SessionID: s.ID, IMSI: s.IMSI, MonitoringKey: mk}
			s.pendingMonitors[mk] = m
		}
		m.BytesTx += tx
		m.BytesRx += rx
	}
}

// HasPending は未報告の更新が存在するかを返す。
func (s *Session) HasPending() bool {
	return len(s.pending) > 0 || len(s.pendingMonitors) > 0
}

// TakePending は未報告の更新をすべて取り出し、セッションから除去する。
// 送信失敗時はRestorePendingで戻すこと。
func (s *Session) TakePending() ([]UsageUpdate, []MonitorUpdate) {
	var ups []UsageUpdate
	for _, u := range s.pending {
		ups = append(ups, *u)
	}
	var mons []MonitorUpdate
	for _, m := range s.pendingMonitors {
		mons = append(mons, *m)
	}
	s.pending = make(map[string]*UsageUpdate)
	s.pendingMonitors = make(map[string]*MonitorUpdate)
	return ups, mons
}

// RestorePending は送信に失敗した更新を未報告状態へ戻す。
// 取り出し後に蓄積された新しい使用量とはルール単位でマージされる。
func (s *Session) RestorePending(ups []UsageUpdate, mons []MonitorUpdate) {
	for i := range ups {
		u, ok := s.pending[ups[i].RuleID]
		if !ok {
			cp := ups[i]
			s.pending[ups[i].RuleID] = &cp
			continue
		}
		u.BytesTx += ups[i].BytesTx
		u.BytesRx += ups[i].BytesRx
	}
	for i := range mons {
		m, ok := s.pendingMonitors[mons[i].MonitoringKey]
		if !ok {
			cp := mons[i]
			s.pendingMonitors[mons[i].MonitoringKey] = &cp
			continue
		}
		m.BytesTx += mons[i].BytesTx
		m.BytesRx += mons[i].BytesRx
	}
}
