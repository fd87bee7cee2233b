package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/sony/gobreaker"
)

// HTTPヘッダ定数
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Client はCloudReporterインターフェースのHTTP実装
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string
}

// NewClient は新しい課金クラウドクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetTimeout(config.CloudRequestTimeout)

	cbSettings := gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(cfg.CloudAPIURL, "/"),
	}
}

// ReportCreateSession はセッション生成を課金クラウドへ報告する。
func (c *Client) ReportCreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	body, err := c.post(ctx, "/api/v1/sessions/create", req)
	if err != nil {
		return nil, err
	}
	var resp CreateSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	return &resp, nil
}

// ReportUpdates は蓄積された使用量更新のバッチを報告する。
func (c *Client) ReportUpdates(ctx context.Context, req *UpdateSessionRequest) (*UpdateSessionResponse, error) {
	body, err := c.post(ctx, "/api/v1/sessions/update", req)
	if err != nil {
		return nil, err
	}
	var resp UpdateSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	return &resp, nil
}

// ReportTerminate はセッション終了の最終使用量を報告する。
func (c *Client) ReportTerminate(ctx context.Context, req *TerminateRequest) (*TerminateResponse, error) {
	body, err := c.post(ctx, "/api/v1/sessions/terminate", req)
	if err != nil {
		return nil, err
	}
	var resp TerminateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	return &resp, nil
}

// post はCircuit Breaker経由でPOSTリクエストを実行する。
// 5xx応答と接続エラーはCB失敗として計上する。
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderContentType, ContentTypeJSON).
			SetBody(body).
			Post(c.baseURL + path)
		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		if statusCode >= 500 {
			apiErr := &APIError{StatusCode: statusCode, Message: string(resp.Body())}
			slog.Error("cloud api error",
				"event_id", "CLOUD_API_ERR",
				"path", path,
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return nil, apiErr
		}

		// 4xxは課金クラウド側の判断による拒否であり、CB失敗に計上しない
		if statusCode != http.StatusOK {
			apiErr := &APIError{StatusCode: statusCode, Message: string(resp.Body())}
			slog.Warn("cloud request rejected",
				"event_id", "CLOUD_REJECTED",
				"path", path,
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return apiErr, nil
		}

		slog.Debug("cloud api success",
			"path", path,
			"latency_ms", latencyMs,
		)

		return resp.Body(), nil
	})

	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, ErrCircuitOpen
		}
		return nil, err
	}

	if apiErr, ok := result.(*APIError); ok {
		return nil, apiErr
	}

	raw, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}
	return raw, nil
}
