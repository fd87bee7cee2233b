package enforcer

import (
	"context"
	"log/slog"
	"time"

	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/oyaguma3/session-gateway-poc/internal/pipelined"
	"github.com/oyaguma3/session-gateway-poc/internal/session"
)

// observeEpoch は使用量レポートで観測したエポックを記録し、
// フロー制御プレーンの再起動を検出した場合は再同期を開始する。
// ループ上で実行される。
func (e *Enforcer) observeEpoch(epoch uint64) {
	e.reportedEpoch = epoch
	if !e.isStale() {
		return
	}
	slog.Info("enforcement plane restart detected, resyncing flows",
		"event_id", "EPOCH_RESYNC",
		"current_epoch", e.currentEpoch,
		"reported_epoch", epoch,
	)
	e.dispatchSetup(epoch)
	// Setup完了前に到着する後続レポートによる二重Setupを防ぐため、
	// 応答を待たずに現在エポックを更新する
	e.currentEpoch = epoch
}

// isStale はフロー制御プレーンが再起動直後とみなされる状態かを返す。
// エポック0は常にSetup待ちとして扱う。
func (e *Enforcer) isStale() bool {
	return e.currentEpoch == 0 || e.currentEpoch != e.reportedEpoch
}

// dispatchSetup は全セッション状態のSetupを非同期で送出する。
// ループ上で実行される。
func (e *Enforcer) dispatchSetup(epoch uint64) {
	req := e.buildSetupRequest(epoch)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.PipelinedRequestTimeout)
		defer cancel()
		resp, err := e.gateway.Setup(ctx, req)
		e.Post(func() { e.handleSetupResult(epoch, resp, err) })
	}()
}

// buildSetupRequest は非終了セッションのスナップショットを構築する。
func (e *Enforcer) buildSetupRequest(epoch uint64) *pipelined.SetupRequest {
	req := &pipelined.SetupRequest{Epoch: epoch}
	e.table.Each(func(s *session.Session) {
		if s.Terminating {
			return
		}
		req.Sessions = append(req.Sessions, pipelined.ActiveSession{
			IMSI:      s.IMSI,
			SessionID: s.ID,
			RuleIDs:   s.Credit.RuleIDs(),
		})
	})
	return req
}

// handleSetupResult はSetup応答を処理する。ループ上で実行される。
//   - RPC失敗: 固定間隔でリトライ
//   - OUTDATED_EPOCH: 新しいエポックのSetupが先行済みのため放棄
//   - FAILURE: 固定間隔でリトライ
//   - 成功: 完了
func (e *Enforcer) handleSetupResult(epoch uint64, resp *pipelined.SetupResponse, err error) {
	if err != nil {
		slog.Error("pipelined setup rpc failed, scheduling retry",
			"event_id", "EPOCH_SETUP_ERR",
			"epoch", epoch,
			"error", err.Error(),
		)
		e.scheduleSetupRetry(epoch)
		return
	}

	switch resp.Result {
	case pipelined.SetupOutdatedEpoch:
		slog.Warn("pipelined setup epoch outdated, abandoning",
			"event_id", "EPOCH_SETUP_OUTDATED",
			"epoch", epoch,
		)
	case pipelined.SetupFailure:
		slog.Warn("pipelined setup failed, scheduling retry",
			"event_id", "EPOCH_SETUP_RETRY",
			"epoch", epoch,
		)
		e.scheduleSetupRetry(epoch)
	default:
		slog.Debug("pipelined setup complete", "epoch", epoch)
	}
}

// scheduleSetupRetry は固定間隔後にSetupの再送出をループへ予約する。
// 明示的なキャンセルは持たず、新しいエポックに追い越された試行は
// OUTDATED_EPOCH応答で放棄される。
func (e *Enforcer) scheduleSetupRetry(epoch uint64) {
	time.AfterFunc(e.retryInterval, func() {
		e.Post(func() { e.dispatchSetup(epoch) })
	})
}
