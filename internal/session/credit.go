package session

import (
	"fmt"
	"sort"
)

// CreditGrant は課金クラウドが発行する課金キー単位のクレジット付与
type CreditGrant struct {
	ChargingKey  uint32   `json:"charging_key"`
	GrantedBytes uint64   `json:"granted_bytes"`
	RuleIDs      []string `json:"rule_ids"`
}

// MonitorGrant は使用量モニタキー単位の付与
type MonitorGrant struct {
	MonitoringKey string   `json:"monitoring_key"`
	GrantedBytes  uint64   `json:"granted_bytes"`
	RuleIDs       []string `json:"rule_ids"`
}

// ChargingBucket は課金キー単位のクレジット状態
type ChargingBucket struct {
	GrantedBytes uint64
	UsedBytes    uint64
}

// MonitorBucket は使用量モニタキー単位の状態
type MonitorBucket struct {
	GrantedBytes uint64
	UsedBytes    uint64
}

// CreditState はセッションのクレジット状態を保持する。
// 中身は課金統合が所有し、Local Enforcerのループ上でのみ変更される。
type CreditState struct {
	Buckets  map[uint32]*ChargingBucket
	Monitors map[string]*MonitorBucket

	ruleCharging map[string]uint32
	ruleMonitor  map[string]string
}

// NewCreditState は空のCreditStateを生成する。
func NewCreditState() CreditState {
	return CreditState{
		Buckets:      make(map[uint32]*ChargingBucket),
		Monitors:     make(map[string]*MonitorBucket),
		ruleCharging: make(map[string]uint32),
		ruleMonitor:  make(map[string]string),
	}
}

// Init はセッション生成応答のクレジット付与からクレジット状態を初期化する。
// 不正な付与（課金キー0、キー重複）はエラーを返す。
func (cs *CreditState) Init(credits []CreditGrant, monitors []MonitorGrant) error {
	for _, g := range credits {
		if g.ChargingKey == 0 {
			return fmt.Errorf("%w: charging key 0", ErrInvalidCreditGrant)
		}
		if _, ok := cs.Buckets[g.ChargingKey]; ok {
			return fmt.Errorf("%w: duplicate charging key %d", ErrInvalidCreditGrant, g.ChargingKey)
		}
		cs.Buckets[g.ChargingKey] = &ChargingBucket{GrantedBytes: g.GrantedBytes}
		for _, rule := range g.RuleIDs {
			cs.ruleCharging[rule] = g.ChargingKey
		}
	}
	for _, g := range monitors {
		if g.MonitoringKey == "" {
			return fmt.Errorf("%w: empty monitoring key", ErrInvalidCreditGrant)
		}
		if _, ok := cs.Monitors[g.MonitoringKey]; ok {
			return fmt.Errorf("%w: duplicate monitoring key %q", ErrInvalidCreditGrant, g.MonitoringKey)
		}
		cs.Monitors[g.MonitoringKey] = &MonitorBucket{GrantedBytes: g.GrantedBytes}
		for _, rule := range g.RuleIDs {
			cs.ruleMonitor[rule] = g.MonitoringKey
		}
	}
	return nil
}

// ApplyGrant は使用量報告応答の追加付与を課金バケットへ反映する。
// 未知の課金キーは新規バケットとして扱う。
func (cs *CreditState) ApplyGrant(key uint32, grantedBytes uint64) {
	b, ok := cs.Buckets[key]
	if !ok {
		b = &ChargingBucket{}
		cs.Buckets[key] = b
	}
	b.GrantedBytes += grantedBytes
}

// ApplyMonitorGrant は使用量報告応答のモニタ付与を反映する。
func (cs *CreditState) ApplyMonitorGrant(key string, grantedBytes uint64) {
	m, ok := cs.Monitors[key]
	if !ok {
		m = &MonitorBucket{}
		cs.Monitors[key] = m
	}
	m.GrantedBytes += grantedBytes
}

// chargeRule はルールに対応する課金バケットへ使用量を加算する。
// 対応が未登録のルールは課金クラウド側で解決されるため、ここでは無視する。
func (cs *CreditState) chargeRule(ruleID string, tx, rx uint64) {
	if key, ok := cs.ruleCharging[ruleID]; ok {
		if b, ok := cs.Buckets[key]; ok {
			b.UsedBytes += tx + rx
		}
	}
	if mk, ok := cs.ruleMonitor[ruleID]; ok {
		if m, ok := cs.Monitors[mk]; ok {
			m.UsedBytes += tx + rx
		}
	}
}

// RuleIDs は課金・モニタ対応が登録されているルールIDの一覧を返す。
func (cs *CreditState) RuleIDs() []string {
	set := make(map[string]struct{})
	for r := range cs.ruleCharging {
		set[r] = struct{}{}
	}
	for r := range cs.ruleMonitor {
		set[r] = struct{}{}
	}
	ids := make([]string, 0, len(set))
	for r := range set {
		ids = append(ids, r)
	}
	sort.Strings(ids)
	return ids
}

// monitorKeyFor はルールに対応するモニタキーを返す。
func (cs *CreditState) monitorKeyFor(ruleID string) (string, bool) {
	mk, ok := cs.ruleMonitor[ruleID]
	return mk, ok
}
