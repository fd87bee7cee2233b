// Package manager はセッション管理のユースケースを提供する。
package manager

import (
	"context"

	"github.com/oyaguma3/session-gateway-poc/internal/dto"
	"github.com/oyaguma3/session-gateway-poc/internal/enforcer"
	"github.com/oyaguma3/session-gateway-poc/internal/session"
)

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=manager

// SessionManagerInterface はセッション管理ユースケースのインターフェースを定義する
type SessionManagerInterface interface {
	// CreateSession は新しいセッションを確立する
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	// ReportRuleStats はフロー制御プレーンからの使用量レポートを取り込む
	ReportRuleStats(tbl *dto.RuleRecordTable)
	// EndSession は加入者のセッション終了を開始する
	EndSession(imsi string) error
}

// LocalEnforcer はセッションテーブルを所有するLocal Enforcerへのインターフェースを定義する
type LocalEnforcer interface {
	// DuplicateStatus は既存セッションとの重複を判定する
	DuplicateStatus(imsi string, cfg *session.Config) enforcer.Duplicate
	// ActiveSessionID は非終了セッションのIDを返す
	ActiveSessionID(imsi string) (string, bool)
	// InitSession は課金クラウド応答からセッションを具現化する
	InitSession(imsi, sid string, cfg session.Config, credits []session.CreditGrant, monitors []session.MonitorGrant) error
	// TerminateSubscriber はセッション終了シーケンスを開始する
	TerminateSubscriber(imsi string) error
	// AggregateRecords は使用量レコードを取り込む
	AggregateRecords(tbl *session.UsageRecordTable)
}
