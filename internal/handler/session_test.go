package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/oyaguma3/session-gateway-poc/internal/dto"
	"github.com/oyaguma3/session-gateway-poc/internal/manager"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testIMSI = "440101234567890"

func setupHandler(t *testing.T) (*SessionHandler, *manager.MockSessionManagerInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mgr := manager.NewMockSessionManagerInterface(ctrl)
	cfg := &config.Config{LogMaskIMSI: true}
	return NewSessionHandler(mgr, cfg), mgr
}

func newRouter(h *SessionHandler) *gin.Engine {
	engine := gin.New()
	engine.POST("/api/v1/sessions", h.HandleCreateSession)
	engine.POST("/api/v1/rule-stats", h.HandleReportRuleStats)
	engine.DELETE("/api/v1/sessions/:imsi", h.HandleEndSession)
	return engine
}

func postJSON(engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHandleCreateSession(t *testing.T) {
	h, mgr := setupHandler(t)
	engine := newRouter(h)

	mgr.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(
		&dto.CreateSessionResponse{SessionID: testIMSI + "-abc"}, nil)

	w := postJSON(engine, "/api/v1/sessions", dto.CreateSessionRequest{
		IMSI: testIMSI,
		APN:  "internet",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var resp dto.CreateSessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SessionID != testIMSI+"-abc" {
		t.Errorf("session_id = %s, want %s-abc", resp.SessionID, testIMSI)
	}
}

func TestHandleCreateSessionMissingIMSI(t *testing.T) {
	h, _ := setupHandler(t)
	engine := newRouter(h)

	w := postJSON(engine, "/api/v1/sessions", map[string]any{"apn": "internet"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateSessionInvalidIMSI(t *testing.T) {
	h, _ := setupHandler(t)
	engine := newRouter(h)

	w := postJSON(engine, "/api/v1/sessions", dto.CreateSessionRequest{IMSI: "12345"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateSessionBillingRejected(t *testing.T) {
	h, mgr := setupHandler(t)
	engine := newRouter(h)

	mgr.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil, manager.ErrBillingRejected)

	w := postJSON(engine, "/api/v1/sessions", dto.CreateSessionRequest{IMSI: testIMSI})

	if w.Code != http.StatusPreconditionFailed {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusPreconditionFailed)
	}
	var pd dto.ProblemDetail
	if err := json.Unmarshal(w.Body.Bytes(), &pd); err != nil {
		t.Fatalf("failed to decode problem detail: %v", err)
	}
	if pd.Status != http.StatusPreconditionFailed {
		t.Errorf("problem status = %d, want %d", pd.Status, http.StatusPreconditionFailed)
	}
	if pd.Instance != "/api/v1/sessions" {
		t.Errorf("problem instance = %s, want /api/v1/sessions", pd.Instance)
	}
}

func TestHandleCreateSessionInitFailed(t *testing.T) {
	h, mgr := setupHandler(t)
	engine := newRouter(h)

	mgr.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil, manager.ErrSessionInitFailed)

	w := postJSON(engine, "/api/v1/sessions", dto.CreateSessionRequest{IMSI: testIMSI})

	// 課金クラウド受理後のローカル初期化失敗も課金拒否と同じ前提条件エラー
	if w.Code != http.StatusPreconditionFailed {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusPreconditionFailed)
	}
}

func TestHandleReportRuleStats(t *testing.T) {
	h, mgr := setupHandler(t)
	engine := newRouter(h)

	var got *dto.RuleRecordTable
	mgr.EXPECT().ReportRuleStats(gomock.Any()).Do(
		func(tbl *dto.RuleRecordTable) { got = tbl })

	w := postJSON(engine, "/api/v1/rule-stats", dto.RuleRecordTable{
		Epoch: 3,
		Records: []dto.RuleRecord{
			{IMSI: testIMSI, RuleID: "rule1", BytesTx: 100, BytesRx: 200},
		},
	})

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if got == nil || got.Epoch != 3 || len(got.Records) != 1 {
		t.Errorf("forwarded table = %+v, want epoch 3 with 1 record", got)
	}
}

func TestHandleEndSession(t *testing.T) {
	h, mgr := setupHandler(t)
	engine := newRouter(h)

	mgr.EXPECT().EndSession(testIMSI).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+testIMSI, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
}

func TestHandleEndSessionNotFound(t *testing.T) {
	h, mgr := setupHandler(t)
	engine := newRouter(h)

	mgr.EXPECT().EndSession(testIMSI).Return(manager.ErrSessionNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+testIMSI, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestValidateIMSI(t *testing.T) {
	tests := []struct {
		imsi    string
		wantErr bool
	}{
		{"440101234567890", false},
		{"123456789012345", false},
		{"44010123456789", true},
		{"4401012345678901", true},
		{"44010123456789a", true},
		{"", true},
	}

	for _, tt := range tests {
		err := validateIMSI(tt.imsi)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateIMSI(%q) error = %v, wantErr %v", tt.imsi, err, tt.wantErr)
		}
	}
}
