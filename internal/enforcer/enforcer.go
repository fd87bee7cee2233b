// Package enforcer はセッションテーブルとエポック状態を所有するLocal Enforcerを提供する。
//
// すべての状態変更は単一のコマンドループ上で実行される。RPCハンドラは
// 共有状態を直接変更せず、Post経由でクロージャをループへ送る。
// ネットワークI/Oはgoroutineへ切り出し、完了時にPostでループへ戻る。
package enforcer

import (
	"context"
	"log/slog"
	"time"

	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/oyaguma3/session-gateway-poc/internal/logging"
	"github.com/oyaguma3/session-gateway-poc/internal/pipelined"
	"github.com/oyaguma3/session-gateway-poc/internal/reporter"
	"github.com/oyaguma3/session-gateway-poc/internal/session"
)

// MirrorWriter はセッション状態の監視用ミラーへの書き込みインターフェース
type MirrorWriter interface {
	PutSession(ctx context.Context, s *session.Session) error
	DeleteSession(ctx context.Context, imsi string) error
}

// Duplicate は同一加入者の既存セッションとの重複判定結果
type Duplicate int

const (
	// DuplicateNone は既存の非終了セッションなし
	DuplicateNone Duplicate = iota
	// DuplicateIdentical は設定が完全一致する既存セッションあり
	DuplicateIdentical
	// DuplicateDifferent は設定の異なる既存セッションあり
	DuplicateDifferent
)

// Enforcer はLocal Enforcer本体。
type Enforcer struct {
	table    *session.Table
	gateway  pipelined.FlowGateway
	reporter reporter.CloudReporter
	mirror   MirrorWriter
	masker   *logging.Masker

	cmds chan func()

	// エポック状態。ループ上でのみ変更される。
	currentEpoch  uint64
	reportedEpoch uint64

	retryInterval time.Duration
	drainTimeout  time.Duration
}

// New は新しいEnforcerを生成する。mirrorはnil可。
func New(gw pipelined.FlowGateway, rep reporter.CloudReporter, mirror MirrorWriter, masker *logging.Masker) *Enforcer {
	if masker == nil {
		masker = logging.NewMasker(false)
	}
	return &Enforcer{
		table:         session.NewTable(),
		gateway:       gw,
		reporter:      rep,
		mirror:        mirror,
		masker:        masker,
		cmds:          make(chan func(), 256),
		retryInterval: config.SetupRetryInterval,
		drainTimeout:  config.TerminationDrainTimeout,
	}
}

// Run はコマンドループを実行する。ctxのキャンセルで停止する。
func (e *Enforcer) Run(ctx context.Context) {
	for {
		select {
		case fn := <-e.cmds:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// Post はクロージャをコマンドループへ送る。
func (e *Enforcer) Post(fn func()) {
	e.cmds <- fn
}

// do はクロージャをループ上で実行し、完了まで待つ。
func (e *Enforcer) do(fn func()) {
	done := make(chan struct{})
	e.Post(func() {
		fn()
		close(done)
	})
	<-done
}

// AggregateRecords は使用量レコードの取り込みをループへ送る。
// 呼び出し元はブロックされない（fire-and-forget）。
func (e *Enforcer) AggregateRecords(tbl *session.UsageRecordTable) {
	e.Post(func() { e.handleRecords(tbl) })
}

// DuplicateStatus は加入者の既存セッションとの重複を判定する。
func (e *Enforcer) DuplicateStatus(imsi string, cfg *session.Config) Duplicate {
	var d Duplicate
	e.do(func() { d = e.duplicateStatus(imsi, cfg) })
	return d
}

// ActiveSessionID は加入者の非終了セッションのIDを返す。
func (e *Enforcer) ActiveSessionID(imsi string) (string, bool) {
	var sid string
	var ok bool
	e.do(func() {
		if s := e.table.Active(imsi); s != nil {
			sid, ok = s.ID, true
		}
	})
	return sid, ok
}

// InitSession は課金クラウド応答からセッションを具現化する。
// クレジット初期化の失敗時はセッションを生成せずエラーを返す。
func (e *Enforcer) InitSession(imsi, sid string, cfg session.Config, credits []session.CreditGrant, monitors []session.MonitorGrant) error {
	var err error
	e.do(func() { err = e.initSession(imsi, sid, cfg, credits, monitors) })
	return err
}

// TerminateSubscriber はセッション終了シーケンスを開始する（フェーズ1）。
// セッションが存在しない場合はsession.ErrSessionNotFoundを返す。
func (e *Enforcer) TerminateSubscriber(imsi string) error {
	var err error
	e.do(func() { err = e.terminateSubscriber(imsi) })
	return err
}

// duplicateStatus はループ上で重複判定を行う。
func (e *Enforcer) duplicateStatus(imsi string, cfg *session.Config) Duplicate {
	s := e.table.Active(imsi)
	if s == nil {
		return DuplicateNone
	}
	if s.Config.Equal(cfg) {
		return DuplicateIdentical
	}
	return DuplicateDifferent
}

// initSession はループ上でセッションを生成しテーブルへ登録する。
// 重複判定から具現化までの間に別のリクエストがセッションを登録しうるため、
// ここで非終了セッションの不在を再確認する。
func (e *Enforcer) initSession(imsi, sid string, cfg session.Config, credits []session.CreditGrant, monitors []session.MonitorGrant) error {
	if cur := e.table.Active(imsi); cur != nil {
		slog.Warn("concurrent session creation detected, rejecting",
			"event_id", "SESSION_INIT_ERR",
			"imsi", e.masker.IMSI(imsi),
			"session_id", sid,
			"existing_session_id", cur.ID,
		)
		return session.ErrSessionExists
	}

	s := session.New(sid, imsi, cfg)
	if err := s.Credit.Init(credits, monitors); err != nil {
		return err
	}
	s.StartTime = time.Now().Unix()
	e.table.Put(s)
	e.mirrorPut(s)
	return nil
}

// mirrorPut はセッションのミラーエントリ書き込みを非同期で行う。
// ミラーはベストエフォートであり、失敗はログのみでループを妨げない。
func (e *Enforcer) mirrorPut(s *session.Session) {
	if e.mirror == nil {
		return
	}
	// ループ外から参照するためスナップショットを渡す
	cp := session.New(s.ID, s.IMSI, s.Config)
	cp.StartTime = s.StartTime
	cp.TotalTx = s.TotalTx
	cp.TotalRx = s.TotalRx
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.MirrorWriteTimeout)
		defer cancel()
		if err := e.mirror.PutSession(ctx, cp); err != nil {
			slog.Warn("session mirror write failed",
				"event_id", "MIRROR_ERR",
				"imsi", e.masker.IMSI(s.IMSI),
				"error", err.Error(),
			)
		}
	}()
}

// mirrorDelete はセッションのミラーエントリ削除を非同期で行う。
func (e *Enforcer) mirrorDelete(imsi string) {
	if e.mirror == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.MirrorWriteTimeout)
		defer cancel()
		if err := e.mirror.DeleteSession(ctx, imsi); err != nil {
			slog.Warn("session mirror delete failed",
				"event_id", "MIRROR_ERR",
				"imsi", e.masker.IMSI(imsi),
				"error", err.Error(),
			)
		}
	}()
}
