package store

import (
	"context"
	"fmt"

	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/oyaguma3/session-gateway-poc/internal/session"
)

// SessionMirror はアクティブセッションの状態を監視ツール向けにValkeyへ
// 書き出す。書き込み専用のベストエフォートであり、セッション状態の
// 正本はLocal Enforcerのインメモリテーブルにある。
type SessionMirror struct {
	vc *ValkeyClient
}

// NewSessionMirror は新しいSessionMirrorを生成する。
func NewSessionMirror(vc *ValkeyClient) *SessionMirror {
	return &SessionMirror{vc: vc}
}

// PutSession はセッションのミラーエントリを書き込む。
func (m *SessionMirror) PutSession(ctx context.Context, s *session.Session) error {
	key := KeyPrefixSession + s.IMSI
	fields := map[string]any{
		"session_id": s.ID,
		"imsi":       s.IMSI,
		"apn":        s.Config.APN,
		"ue_ipv4":    s.Config.UeIPv4,
		"start_time": s.StartTime,
		"total_tx":   s.TotalTx,
		"total_rx":   s.TotalRx,
	}

	pipe := m.vc.Client().Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, config.MirrorTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return nil
}

// DeleteSession はセッションのミラーエントリを削除する。
func (m *SessionMirror) DeleteSession(ctx context.Context, imsi string) error {
	key := KeyPrefixSession + imsi
	if err := m.vc.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return nil
}
