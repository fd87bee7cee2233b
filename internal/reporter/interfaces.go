package reporter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_reporter.go -package=mocks

// CloudReporter は課金クラウドとの通信インターフェースを定義する
type CloudReporter interface {
	// ReportCreateSession はセッション生成を課金クラウドへ報告する
	ReportCreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error)
	// ReportUpdates は蓄積された使用量更新のバッチを報告する
	ReportUpdates(ctx context.Context, req *UpdateSessionRequest) (*UpdateSessionResponse, error)
	// ReportTerminate はセッション終了の最終使用量を報告する
	ReportTerminate(ctx context.Context, req *TerminateRequest) (*TerminateResponse, error)
}
