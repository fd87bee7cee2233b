package pipelined

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_pipelined.go -package=mocks

// FlowGateway はフロー制御プレーンとの通信インターフェースを定義する
type FlowGateway interface {
	// Setup は全セッション状態をエポック付きで再送出する
	Setup(ctx context.Context, req *SetupRequest) (*SetupResponse, error)
	// DeleteFlows は加入者のフロー削除を指示する
	DeleteFlows(ctx context.Context, imsi string) error
}
