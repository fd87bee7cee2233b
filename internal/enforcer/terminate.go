package enforcer

import (
	"context"
	"log/slog"
	"time"

	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/oyaguma3/session-gateway-poc/internal/reporter"
	"github.com/oyaguma3/session-gateway-poc/internal/session"
)

// terminateSubscriber はループ上で終了シーケンスを開始する。
// セッションを終了処理中へ遷移させ、フロー削除を送出し、
// 排出タイムアウトを予約する。既に終了処理中の場合は冪等に成功する。
func (e *Enforcer) terminateSubscriber(imsi string) error {
	s := e.table.Active(imsi)
	if s == nil {
		// 終了処理中のセッションが残っていれば冪等な成功とする
		for _, t := range e.table.Sessions(imsi) {
			if t.Terminating {
				return nil
			}
		}
		return session.ErrSessionNotFound
	}

	s.Terminating = true
	sid := s.ID

	slog.Info("session termination started",
		"event_id", "SESSION_END_START",
		"imsi", e.masker.IMSI(imsi),
		"session_id", sid,
	)

	e.dispatchDeleteFlows(imsi)

	// フロー排出が確認できない場合の打ち切り
	time.AfterFunc(e.drainTimeout, func() {
		e.Post(func() { e.completeTermination(imsi, sid, "drain_timeout") })
	})
	return nil
}

// dispatchDeleteFlows はフロー制御プレーンへの加入者フロー削除を
// 非同期で送出する。失敗してもループには影響せず、排出タイムアウトが
// 終了完了を保証する。
func (e *Enforcer) dispatchDeleteFlows(imsi string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.PipelinedRequestTimeout)
		defer cancel()
		if err := e.gateway.DeleteFlows(ctx, imsi); err != nil {
			slog.Error("flow deletion request failed",
				"event_id", "FLOW_DELETE_ERR",
				"imsi", e.masker.IMSI(imsi),
				"error", err.Error(),
			)
		}
	}()
}

// checkTerminationDrain は使用量レポートに現れなかった終了処理中
// セッションのフロー排出完了を判定する。ループ上で実行される。
func (e *Enforcer) checkTerminationDrain(seen map[string]bool) {
	type drained struct{ imsi, sid string }
	var done []drained
	e.table.Each(func(s *session.Session) {
		if s.Terminating && !seen[s.IMSI] {
			done = append(done, drained{s.IMSI, s.ID})
		}
	})
	for _, d := range done {
		e.completeTermination(d.imsi, d.sid, "flows_drained")
	}
}

// completeTermination は終了シーケンスの最終フェーズ。
// 最終使用量を課金クラウドへ非同期で報告し、セッションを
// テーブルから除去する。除去は報告の成否に関わらず行う。
// 排出判定とタイムアウトの両方から呼ばれるため冪等である。
func (e *Enforcer) completeTermination(imsi, sid, reason string) {
	s := e.table.Find(imsi, sid)
	if s == nil || !s.Terminating {
		return
	}

	req := e.buildTerminateRequest(s)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.CloudRequestTimeout)
		defer cancel()
		if _, err := e.reporter.ReportTerminate(ctx, req); err != nil {
			slog.Error("session termination report failed, final usage lost",
				"event_id", "TERM_REPORT_ERR",
				"imsi", e.masker.IMSI(req.IMSI),
				"session_id", req.SessionID,
				"error", err.Error(),
			)
		}
	}()

	e.table.Remove(imsi, sid)
	if e.table.Active(imsi) == nil {
		e.mirrorDelete(imsi)
	}

	slog.Info("session terminated",
		"event_id", "SESSION_END",
		"imsi", e.masker.IMSI(imsi),
		"session_id", sid,
		"reason", reason,
		"total_tx", s.TotalTx,
		"total_rx", s.TotalRx,
	)
}

// buildTerminateRequest は最終報告リクエストを構築する。
// 未報告の更新はすべて最終報告へ移し替える。
func (e *Enforcer) buildTerminateRequest(s *session.Session) *reporter.TerminateRequest {
	ups, mons := s.TakePending()
	return &reporter.TerminateRequest{
		IMSI:      s.IMSI,
		SessionID: s.ID,
		FinalTx:   s.TotalTx,
		FinalRx:   s.TotalRx,
		Updates:   ups,
		Monitors:  mons,
	}
}
