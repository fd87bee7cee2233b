package enforcer

import (
	"context"
	"log/slog"

	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/oyaguma3/session-gateway-poc/internal/reporter"
	"github.com/oyaguma3/session-gateway-poc/internal/session"
)

// handleRecords は使用量レコードのバッチを取り込み、エポックの観測と
// 使用量報告ループの起動までを1ループターンで行う。
func (e *Enforcer) handleRecords(tbl *session.UsageRecordTable) {
	slog.Debug("aggregating usage records",
		"records", len(tbl.Records),
		"epoch", tbl.Epoch,
	)

	// このレポートにフローが現れた加入者
	seen := make(map[string]bool)

	for _, rec := range tbl.Records {
		target := e.table.Active(rec.IMSI)
		if target == nil {
			// 終了処理中のセッションには最終使用量として取り込む
			for _, s := range e.table.Sessions(rec.IMSI) {
				target = s
				break
			}
		}
		if target == nil {
			slog.Debug("usage record for unknown subscriber",
				"imsi", e.masker.IMSI(rec.IMSI),
				"rule_id", rec.RuleID,
			)
			continue
		}
		seen[rec.IMSI] = true
		target.AddUsage(rec.RuleID, rec.BytesTx, rec.BytesRx)
	}

	// 終了処理中セッションの排出判定
	e.checkTerminationDrain(seen)

	// ミラーの使用量を更新
	for imsi := range seen {
		if s := e.table.Active(imsi); s != nil {
			e.mirrorPut(s)
		}
	}

	e.observeEpoch(tbl.Epoch)
	e.checkUsageForReporting()
}

// checkUsageForReporting は蓄積された更新をすべて収集し課金クラウドへ送る。
// バッチが空なら何もしない。送信成功時は応答反映後に再度収集し、
// 空のバッチが得られるまで排出を続ける。失敗時は更新を各セッションへ
// 戻して停止し、次の使用量到着まで再送しない。ループ上で実行される。
func (e *Enforcer) checkUsageForReporting() {
	req := e.collectUpdates()
	if req.Empty() {
		return
	}
	slog.Debug("sending usage updates to cloud",
		"updates", len(req.Updates),
		"monitors", len(req.Monitors),
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.CloudRequestTimeout)
		defer cancel()
		resp, err := e.reporter.ReportUpdates(ctx, req)
		e.Post(func() {
			if err != nil {
				slog.Error("usage report failed entirely, restoring updates",
					"event_id", "REPORT_ERR",
					"updates", len(req.Updates),
					"error", err.Error(),
				)
				e.resetUpdates(req)
				return
			}
			e.applyUpdateResponse(resp)
			// ネットワーク往復を挟むため、ここからの再呼び出しは
			// スタックを深くしない
			e.checkUsageForReporting()
		})
	}()
}

// collectUpdates は全セッションの未報告更新を1バッチへ移し替える。
func (e *Enforcer) collectUpdates() *reporter.UpdateSessionRequest {
	req := &reporter.UpdateSessionRequest{}
	e.table.Each(func(s *session.Session) {
		ups, mons := s.TakePending()
		req.Updates = append(req.Updates, ups...)
		req.Monitors = append(req.Monitors, mons...)
	})
	return req
}

// resetUpdates は送信に失敗したバッチを各セッションの未報告状態へ戻す。
// 既に破棄されたセッションの更新は失われる。
func (e *Enforcer) resetUpdates(req *reporter.UpdateSessionRequest) {
	for i := range req.Updates {
		u := req.Updates[i]
		if s := e.table.Find(u.IMSI, u.SessionID); s != nil {
			s.RestorePending([]session.UsageUpdate{u}, nil)
		}
	}
	for i := range req.Monitors {
		m := req.Monitors[i]
		if s := e.table.Find(m.IMSI, m.SessionID); s != nil {
			s.RestorePending(nil, []session.MonitorUpdate{m})
		}
	}
}

// applyUpdateResponse は課金クラウドの応答を各セッションへ反映する。
func (e *Enforcer) applyUpdateResponse(resp *reporter.UpdateSessionResponse) {
	for _, r := range resp.Responses {
		s := e.table.Find(r.IMSI, r.SessionID)
		if s == nil {
			continue
		}
		if !r.Success {
			slog.Warn("credit update denied by cloud",
				"event_id", "CREDIT_DENIED",
				"imsi", e.masker.IMSI(r.IMSI),
				"charging_key", r.ChargingKey,
			)
			continue
		}
		s.Credit.ApplyGrant(r.ChargingKey, r.GrantedBytes)
	}
	for _, r := range resp.Monitors {
		s := e.table.Find(r.IMSI, r.SessionID)
		if s == nil {
			continue
		}
		if !r.Success {
			slog.Warn("monitor update denied by cloud",
				"event_id", "MONITOR_DENIED",
				"imsi", e.masker.IMSI(r.IMSI),
				"monitoring_key", r.MonitoringKey,
			)
			continue
		}
		s.Credit.ApplyMonitorGrant(r.MonitoringKey, r.GrantedBytes)
	}
}
