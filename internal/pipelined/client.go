package pipelined

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
)

// HTTPヘッダ定数
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Client はFlowGatewayインターフェースのHTTP実装
type Client struct {
	httpClient *resty.Client
	baseURL    string
}

// NewClient は新しいフロー制御プレーンクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetTimeout(config.PipelinedRequestTimeout)

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.PipelinedAPIURL, "/"),
	}
}

// Setup は全セッション状態をエポック付きで再送出する。
func (c *Client) Setup(ctx context.Context, req *SetupRequest) (*SetupResponse, error) {
	start := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader(HeaderContentType, ContentTypeJSON).
		SetBody(req).
		Post(c.baseURL + "/api/v1/setup")
	if err != nil {
		return nil, &ConnectionError{Cause: err}
	}

	latencyMs := time.Since(start).Milliseconds()

	if resp.StatusCode() != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: string(resp.Body())}
		slog.Error("pipelined setup error",
			"event_id", "PIPELINED_API_ERR",
			"epoch", req.Epoch,
			"http_status", resp.StatusCode(),
			"latency_ms", latencyMs,
		)
		return nil, apiErr
	}

	var result SetupResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}

	slog.Debug("pipelined setup response",
		"epoch", req.Epoch,
		"result", string(result.Result),
		"latency_ms", latencyMs,
	)

	return &result, nil
}

// DeleteFlows は加入者のフロー削除を指示する。
func (c *Client) DeleteFlows(ctx context.Context, imsi string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Delete(c.baseURL + "/api/v1/flows/" + imsi)
	if err != nil {
		return &ConnectionError{Cause: err}
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return &APIError{StatusCode: resp.StatusCode(), Message: string(resp.Body())}
	}
	return nil
}
