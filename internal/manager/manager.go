package manager

import (
	"context"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/oyaguma3/session-gateway-poc/internal/dto"
	"github.com/oyaguma3/session-gateway-poc/internal/enforcer"
	"github.com/oyaguma3/session-gateway-poc/internal/logging"
	"github.com/oyaguma3/session-gateway-poc/internal/reporter"
	"github.com/oyaguma3/session-gateway-poc/internal/session"
)

// SessionManager はセッション生成・使用量取り込み・終了のユースケースを実装する。
type SessionManager struct {
	enf    LocalEnforcer
	rep    reporter.CloudReporter
	masker *logging.Masker
}

// NewSessionManager は新しいSessionManagerを生成する。
func NewSessionManager(enf LocalEnforcer, rep reporter.CloudReporter, masker *logging.Masker) *SessionManager {
	if masker == nil {
		masker = logging.NewMasker(false)
	}
	return &SessionManager{
		enf:    enf,
		rep:    rep,
		masker: masker,
	}
}

// CreateSession は新しいセッションを確立する。
//   - 同一設定の既存セッションがある場合は課金クラウドへ報告せず成功を返す
//   - 設定の異なる既存セッションは終了を開始してから新規生成へ進む
//   - 課金クラウドの拒否は前提条件エラーとして呼び出し元へ返す
func (m *SessionManager) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	cfg, err := buildSessionConfig(req)
	if err != nil {
		return nil, err
	}

	switch m.enf.DuplicateStatus(req.IMSI, cfg) {
	case enforcer.DuplicateIdentical:
		if sid, ok := m.enf.ActiveSessionID(req.IMSI); ok {
			slog.Info("identical session recreation, reporting success",
				"event_id", "SESSION_CREATE_REPLAY",
				"imsi", m.masker.IMSI(req.IMSI),
				"session_id", sid,
			)
			return &dto.CreateSessionResponse{SessionID: sid}, nil
		}
	case enforcer.DuplicateDifferent:
		slog.Info("session config changed, terminating old session",
			"event_id", "SESSION_RECYCLE",
			"imsi", m.masker.IMSI(req.IMSI),
		)
		// 旧セッションを終了処理中へ遷移させてから新規生成へ進む。
		// フロー削除と最終報告は非同期に完了する。
		_ = m.enf.TerminateSubscriber(req.IMSI)
	}

	sid := session.GenerateSessionID(req.IMSI)
	resp, err := m.rep.ReportCreateSession(ctx, buildCreateRequest(req, sid, cfg))
	if err != nil {
		slog.Warn("session creation rejected by billing cloud",
			"event_id", "SESSION_CREATE_ERR",
			"imsi", m.masker.IMSI(req.IMSI),
			"error", err.Error(),
		)
		return nil, ErrBillingRejected
	}

	if err := m.enf.InitSession(req.IMSI, sid, *cfg, resp.Credits, resp.Monitors); err != nil {
		// 課金クラウド側にはセッションが残る可能性がある
		slog.Error("session initialization failed after billing accept",
			"event_id", "SESSION_INIT_ERR",
			"imsi", m.masker.IMSI(req.IMSI),
			"session_id", sid,
			"error", err.Error(),
		)
		return nil, ErrSessionInitFailed
	}

	slog.Debug("session created",
		"imsi", m.masker.IMSI(req.IMSI),
		"session_id", sid,
		"apn", cfg.APN,
	)
	return &dto.CreateSessionResponse{SessionID: sid}, nil
}

// ReportRuleStats はフロー制御プレーンからの使用量レポートを
// Local Enforcerへ引き渡す。呼び出し元はブロックされない。
func (m *SessionManager) ReportRuleStats(tbl *dto.RuleRecordTable) {
	recs := make([]session.RuleRecord, 0, len(tbl.Records))
	for _, r := range tbl.Records {
		recs = append(recs, session.RuleRecord{
			IMSI:    r.IMSI,
			RuleID:  r.RuleID,
			BytesTx: r.BytesTx,
			BytesRx: r.BytesRx,
		})
	}
	m.enf.AggregateRecords(&session.UsageRecordTable{Epoch: tbl.Epoch, Records: recs})
}

// EndSession は加入者のセッション終了を開始する。
func (m *SessionManager) EndSession(imsi string) error {
	if err := m.enf.TerminateSubscriber(imsi); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// buildSessionConfig はリクエストからセッション設定を構築する。
func buildSessionConfig(req *dto.CreateSessionRequest) (*session.Config, error) {
	var hw []byte
	if req.HardwareAddr != "" {
		b, err := hex.DecodeString(req.HardwareAddr)
		if err != nil {
			return nil, ErrInvalidHardwareAddr
		}
		hw = b
	}

	cfg := &session.Config{
		UeIPv4:          req.UeIPv4,
		SpgwIPv4:        req.SpgwIPv4,
		APN:             req.APN,
		MSISDN:          req.MSISDN,
		IMEI:            req.IMEI,
		PLMNID:          req.PLMNID,
		IMSIPLMNID:      req.IMSIPLMNID,
		UserLocation:    req.UserLocation,
		RATType:         req.RATType,
		MACAddr:         session.FormatMAC(hw),
		HardwareAddr:    hw,
		RadiusSessionID: req.RadiusSessionID,
		BearerID:        req.BearerID,
	}
	if req.QoS != nil {
		cfg.QoS = session.QoSInfo{Enabled: true, ClassID: req.QoS.ClassID}
	}
	return cfg, nil
}

// buildCreateRequest は課金クラウド向けのセッション生成報告を構築する。
func buildCreateRequest(req *dto.CreateSessionRequest, sid string, cfg *session.Config) *reporter.CreateSessionRequest {
	out := &reporter.CreateSessionRequest{
		IMSI:            req.IMSI,
		SessionID:       sid,
		UeIPv4:          cfg.UeIPv4,
		SpgwIPv4:        cfg.SpgwIPv4,
		APN:             cfg.APN,
		MSISDN:          cfg.MSISDN,
		IMEI:            cfg.IMEI,
		PLMNID:          cfg.PLMNID,
		IMSIPLMNID:      cfg.IMSIPLMNID,
		UserLocation:    cfg.UserLocation,
		RATType:         cfg.RATType,
		HardwareAddr:    cfg.MACAddr,
		RadiusSessionID: cfg.RadiusSessionID,
		BearerID:        cfg.BearerID,
	}
	if cfg.QoS.Enabled {
		qos := cfg.QoS
		out.QoS = &qos
	}
	return out
}
