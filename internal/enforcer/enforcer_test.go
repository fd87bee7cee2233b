package enforcer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oyaguma3/session-gateway-poc/internal/logging"
	"github.com/oyaguma3/session-gateway-poc/internal/mocks"
	"github.com/oyaguma3/session-gateway-poc/internal/pipelined"
	"github.com/oyaguma3/session-gateway-poc/internal/reporter"
	"github.com/oyaguma3/session-gateway-poc/internal/session"
	"go.uber.org/mock/gomock"
)

// テスト用定数
const (
	testIMSI  = "440101234567890"
	testIMSI2 = "440109876543210"
	testSID   = "440101234567890-sid-1"
	testSID2  = "440109876543210-sid-1"
)

func testConfig() session.Config {
	return session.Config{
		UeIPv4:  "192.168.128.11",
		APN:     "internet",
		RATType: 2,
	}
}

func testGrants() []session.CreditGrant {
	return []session.CreditGrant{
		{ChargingKey: 1, GrantedBytes: 1 << 20, RuleIDs: []string{"rule1"}},
	}
}

// newTestEnforcer はループを起動済みのEnforcerを生成する。
// リトライと排出タイムアウトはテスト向けに短縮する。
func newTestEnforcer(t *testing.T, gw pipelined.FlowGateway, rep reporter.CloudReporter) *Enforcer {
	t.Helper()
	e := New(gw, rep, nil, logging.NewMasker(true))
	e.retryInterval = 20 * time.Millisecond
	e.drainTimeout = 40 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	go e.Run(ctx)
	t.Cleanup(cancel)
	return e
}

// setEpoch はテスト用にエポック状態を直接設定する。
func setEpoch(e *Enforcer, epoch uint64) {
	e.do(func() {
		e.currentEpoch = epoch
		e.reportedEpoch = epoch
	})
}

// waitFor は条件が満たされるまでポーリングする。
func waitFor(t *testing.T, msg string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func usageTable(epoch uint64, recs ...session.RuleRecord) *session.UsageRecordTable {
	return &session.UsageRecordTable{Epoch: epoch, Records: recs}
}

func okUpdateResponse(req *reporter.UpdateSessionRequest) *reporter.UpdateSessionResponse {
	resp := &reporter.UpdateSessionResponse{}
	for _, u := range req.Updates {
		resp.Responses = append(resp.Responses, reporter.CreditUpdateResponse{
			SessionID:    u.SessionID,
			IMSI:         u.IMSI,
			ChargingKey:  1,
			Success:      true,
			GrantedBytes: 1 << 20,
		})
	}
	return resp
}

func TestObserveEpochTriggersSingleSetup(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	var setupCalls atomic.Int32
	var gotReq atomic.Pointer[pipelined.SetupRequest]
	gw.EXPECT().Setup(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *pipelined.SetupRequest) (*pipelined.SetupResponse, error) {
			setupCalls.Add(1)
			gotReq.Store(req)
			return &pipelined.SetupResponse{Result: pipelined.SetupSuccess}, nil
		}).Times(1)
	rep.EXPECT().ReportUpdates(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *reporter.UpdateSessionRequest) (*reporter.UpdateSessionResponse, error) {
			return okUpdateResponse(req), nil
		}).AnyTimes()

	e := newTestEnforcer(t, gw, rep)
	if err := e.InitSession(testIMSI, testSID, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}

	e.AggregateRecords(usageTable(7, session.RuleRecord{IMSI: testIMSI, RuleID: "rule1", BytesTx: 100, BytesRx: 200}))

	waitFor(t, "setup dispatch", func() bool { return setupCalls.Load() == 1 })
	req := gotReq.Load()
	if req.Epoch != 7 {
		t.Errorf("setup epoch = %d, want 7", req.Epoch)
	}
	if len(req.Sessions) != 1 || req.Sessions[0].IMSI != testIMSI {
		t.Errorf("setup sessions = %+v, want 1 session for %s", req.Sessions, testIMSI)
	}
	if len(req.Sessions[0].RuleIDs) != 1 || req.Sessions[0].RuleIDs[0] != "rule1" {
		t.Errorf("setup rule IDs = %v, want [rule1]", req.Sessions[0].RuleIDs)
	}

	var cur uint64
	e.do(func() { cur = e.currentEpoch })
	if cur != 7 {
		t.Errorf("currentEpoch = %d, want 7", cur)
	}

	// 同一エポックの後続レポートはSetupを再送出しない
	e.AggregateRecords(usageTable(7, session.RuleRecord{IMSI: testIMSI, RuleID: "rule1", BytesTx: 1, BytesRx: 1}))
	e.do(func() {})
	time.Sleep(30 * time.Millisecond)
	if n := setupCalls.Load(); n != 1 {
		t.Errorf("setup calls after second report = %d, want 1", n)
	}
}

func TestSetupRetryAbandonedOnOutdatedEpoch(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	var setupCalls atomic.Int32
	first := gw.EXPECT().Setup(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *pipelined.SetupRequest) (*pipelined.SetupResponse, error) {
			setupCalls.Add(1)
			return nil, errors.New("connection refused")
		})
	gw.EXPECT().Setup(gomock.Any(), gomock.Any()).After(first).DoAndReturn(
		func(_ context.Context, _ *pipelined.SetupRequest) (*pipelined.SetupResponse, error) {
			setupCalls.Add(1)
			return &pipelined.SetupResponse{Result: pipelined.SetupOutdatedEpoch}, nil
		})
	rep.EXPECT().ReportUpdates(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *reporter.UpdateSessionRequest) (*reporter.UpdateSessionResponse, error) {
			return okUpdateResponse(req), nil
		}).AnyTimes()

	e := newTestEnforcer(t, gw, rep)
	if err := e.InitSession(testIMSI, testSID, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}

	e.AggregateRecords(usageTable(3, session.RuleRecord{IMSI: testIMSI, RuleID: "rule1", BytesTx: 10, BytesRx: 10}))

	// RPC失敗後に1回だけリトライされ、OUTDATED_EPOCHで打ち切られる
	waitFor(t, "setup retry", func() bool { return setupCalls.Load() == 2 })
	time.Sleep(3 * e.retryInterval)
	if n := setupCalls.Load(); n != 2 {
		t.Errorf("setup calls = %d, want 2", n)
	}
}

func TestUsageReportingDrainsAllSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	var reported atomic.Int32
	rep.EXPECT().ReportUpdates(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *reporter.UpdateSessionRequest) (*reporter.UpdateSessionResponse, error) {
			reported.Add(int32(len(req.Updates)))
			return okUpdateResponse(req), nil
		}).AnyTimes()

	e := newTestEnforcer(t, gw, rep)
	setEpoch(e, 5)
	if err := e.InitSession(testIMSI, testSID, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}
	if err := e.InitSession(testIMSI2, testSID2, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}

	e.AggregateRecords(usageTable(5,
		session.RuleRecord{IMSI: testIMSI, RuleID: "rule1", BytesTx: 100, BytesRx: 50},
		session.RuleRecord{IMSI: testIMSI2, RuleID: "rule1", BytesTx: 200, BytesRx: 80},
	))

	waitFor(t, "usage reported for both sessions", func() bool { return reported.Load() == 2 })

	// 報告済みの更新はセッションへ残らず、付与が反映されている
	waitFor(t, "pending drained", func() bool {
		drained := false
		e.do(func() {
			s1 := e.table.Find(testIMSI, testSID)
			s2 := e.table.Find(testIMSI2, testSID2)
			drained = s1 != nil && s2 != nil && !s1.HasPending() && !s2.HasPending() &&
				s1.Credit.Buckets[1].GrantedBytes == 2<<20
		})
		return drained
	})
}

func TestUsageReportFailureRestoresPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	var reportCalls atomic.Int32
	rep.EXPECT().ReportUpdates(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *reporter.UpdateSessionRequest) (*reporter.UpdateSessionResponse, error) {
			reportCalls.Add(1)
			return nil, errors.New("cloud unreachable")
		}).Times(1)

	e := newTestEnforcer(t, gw, rep)
	setEpoch(e, 5)
	if err := e.InitSession(testIMSI, testSID, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}

	e.AggregateRecords(usageTable(5, session.RuleRecord{IMSI: testIMSI, RuleID: "rule1", BytesTx: 100, BytesRx: 50}))

	waitFor(t, "report attempt", func() bool { return reportCalls.Load() == 1 })

	// 失敗した更新はセッションへ戻り、次の使用量到着まで再送されない
	waitFor(t, "pending restored", func() bool {
		restored := false
		e.do(func() {
			s := e.table.Find(testIMSI, testSID)
			restored = s != nil && s.HasPending()
		})
		return restored
	})
	time.Sleep(30 * time.Millisecond)
	if n := reportCalls.Load(); n != 1 {
		t.Errorf("report calls = %d, want 1 (no retry without new usage)", n)
	}
}

func TestTerminationDrainCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	deleteDone := make(chan struct{})
	gw.EXPECT().DeleteFlows(gomock.Any(), testIMSI).DoAndReturn(
		func(_ context.Context, _ string) error {
			close(deleteDone)
			return nil
		}).Times(1)

	var gotTerm atomic.Pointer[reporter.TerminateRequest]
	rep.EXPECT().ReportUpdates(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *reporter.UpdateSessionRequest) (*reporter.UpdateSessionResponse, error) {
			return okUpdateResponse(req), nil
		}).AnyTimes()
	rep.EXPECT().ReportTerminate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *reporter.TerminateRequest) (*reporter.TerminateResponse, error) {
			gotTerm.Store(req)
			return &reporter.TerminateResponse{SessionID: req.SessionID}, nil
		}).Times(1)

	e := newTestEnforcer(t, gw, rep)
	setEpoch(e, 5)
	if err := e.InitSession(testIMSI, testSID, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}

	// 終了前の使用量は最終報告の累積値へ含まれる
	e.do(func() {
		s := e.table.Find(testIMSI, testSID)
		s.AddUsage("rule1", 300, 700)
		s.TakePending()
	})

	if err := e.TerminateSubscriber(testIMSI); err != nil {
		t.Fatalf("TerminateSubscriber failed: %v", err)
	}
	<-deleteDone

	// 加入者のフローが現れないレポートで排出完了と判定される
	e.AggregateRecords(usageTable(5))

	waitFor(t, "session removed", func() bool {
		removed := false
		e.do(func() { removed = e.table.Count() == 0 })
		return removed
	})
	waitFor(t, "terminate reported", func() bool { return gotTerm.Load() != nil })
	req := gotTerm.Load()
	if req.FinalTx != 300 || req.FinalRx != 700 {
		t.Errorf("final usage = tx %d rx %d, want tx 300 rx 700", req.FinalTx, req.FinalRx)
	}
}

func TestTerminationDrainTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	gw.EXPECT().DeleteFlows(gomock.Any(), testIMSI).Return(errors.New("pipelined down")).Times(1)
	rep.EXPECT().ReportTerminate(gomock.Any(), gomock.Any()).Return(
		nil, errors.New("cloud unreachable")).Times(1)

	e := newTestEnforcer(t, gw, rep)
	setEpoch(e, 5)
	if err := e.InitSession(testIMSI, testSID, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}

	if err := e.TerminateSubscriber(testIMSI); err != nil {
		t.Fatalf("TerminateSubscriber failed: %v", err)
	}

	// フロー削除と最終報告が両方失敗しても、タイムアウトで必ず除去される
	waitFor(t, "session removed after drain timeout", func() bool {
		removed := false
		e.do(func() { removed = e.table.Count() == 0 })
		return removed
	})
}

func TestTerminateSubscriberNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	e := newTestEnforcer(t, gw, rep)
	if err := e.TerminateSubscriber(testIMSI); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("TerminateSubscriber error = %v, want ErrSessionNotFound", err)
	}
}

func TestTerminateSubscriberIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	var deleteCalls atomic.Int32
	gw.EXPECT().DeleteFlows(gomock.Any(), testIMSI).DoAndReturn(
		func(context.Context, string) error {
			deleteCalls.Add(1)
			return nil
		}).Times(1)
	rep.EXPECT().ReportTerminate(gomock.Any(), gomock.Any()).Return(&reporter.TerminateResponse{}, nil).AnyTimes()

	e := newTestEnforcer(t, gw, rep)
	if err := e.InitSession(testIMSI, testSID, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}
	if err := e.TerminateSubscriber(testIMSI); err != nil {
		t.Fatalf("first TerminateSubscriber failed: %v", err)
	}
	// 終了処理中の再要求は冪等な成功
	if err := e.TerminateSubscriber(testIMSI); err != nil {
		t.Errorf("second TerminateSubscriber = %v, want nil", err)
	}
	// 非同期のフロー削除送出が完了してからモック検証に入る
	waitFor(t, "flow deletion dispatched", func() bool { return deleteCalls.Load() == 1 })
}

func TestDuplicateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	e := newTestEnforcer(t, gw, rep)
	cfg := testConfig()

	if d := e.DuplicateStatus(testIMSI, &cfg); d != DuplicateNone {
		t.Errorf("DuplicateStatus = %v, want DuplicateNone", d)
	}

	if err := e.InitSession(testIMSI, testSID, cfg, testGrants(), nil); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}

	same := testConfig()
	if d := e.DuplicateStatus(testIMSI, &same); d != DuplicateIdentical {
		t.Errorf("DuplicateStatus = %v, want DuplicateIdentical", d)
	}

	diff := testConfig()
	diff.UeIPv4 = "192.168.128.99"
	if d := e.DuplicateStatus(testIMSI, &diff); d != DuplicateDifferent {
		t.Errorf("DuplicateStatus = %v, want DuplicateDifferent", d)
	}
}

func TestInitSessionRejectsSecondActiveSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	e := newTestEnforcer(t, gw, rep)
	if err := e.InitSession(testIMSI, testSID, testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("first InitSession failed: %v", err)
	}

	// 重複判定通過後に割り込んだ同一加入者の具現化は拒否される
	err := e.InitSession(testIMSI, testIMSI+"-racer", testConfig(), testGrants(), nil)
	if !errors.Is(err, session.ErrSessionExists) {
		t.Fatalf("second InitSession error = %v, want ErrSessionExists", err)
	}

	var count int
	e.do(func() { count = e.table.Count() })
	if count != 1 {
		t.Errorf("session table count = %d, want 1", count)
	}

	// 終了処理中の旧セッションは新しい具現化を妨げない
	var deleteCalls atomic.Int32
	gw.EXPECT().DeleteFlows(gomock.Any(), testIMSI).DoAndReturn(
		func(context.Context, string) error {
			deleteCalls.Add(1)
			return nil
		})
	rep.EXPECT().ReportTerminate(gomock.Any(), gomock.Any()).Return(&reporter.TerminateResponse{}, nil).AnyTimes()
	if err := e.TerminateSubscriber(testIMSI); err != nil {
		t.Fatalf("TerminateSubscriber failed: %v", err)
	}
	if err := e.InitSession(testIMSI, testIMSI+"-next", testConfig(), testGrants(), nil); err != nil {
		t.Fatalf("InitSession after terminate failed: %v", err)
	}
	// 非同期のフロー削除送出が完了してからモック検証に入る
	waitFor(t, "flow deletion dispatched", func() bool { return deleteCalls.Load() == 1 })
}

func TestInitSessionInvalidGrant(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockFlowGateway(ctrl)
	rep := mocks.NewMockCloudReporter(ctrl)

	e := newTestEnforcer(t, gw, rep)
	grants := []session.CreditGrant{{ChargingKey: 0, GrantedBytes: 100}}
	if err := e.InitSession(testIMSI, testSID, testConfig(), grants, nil); !errors.Is(err, session.ErrInvalidCreditGrant) {
		t.Fatalf("InitSession error = %v, want ErrInvalidCreditGrant", err)
	}
	var count int
	e.do(func() { count = e.table.Count() })
	if count != 0 {
		t.Errorf("session table count = %d, want 0", count)
	}
}
