package config

import "time"

// フロー制御プレーン再同期設定
const (
	// SetupRetryInterval はSetup失敗時の固定リトライ間隔
	SetupRetryInterval = 1 * time.Second
	// PipelinedRequestTimeout はフロー制御プレーンへのリクエストタイムアウト
	PipelinedRequestTimeout = 3 * time.Second
)

// セッション終了設定
const (
	// TerminationDrainTimeout はフロー排出待ちの上限時間
	TerminationDrainTimeout = 5 * time.Second
)

// 課金クラウド設定
const (
	CloudRequestTimeout = 5 * time.Second
)

// Circuit Breaker設定（課金クラウド向け）
const (
	CBName             = "cloud-reporter"
	CBMaxRequests      = 1
	CBInterval         = 60 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10
	ValkeyMaxRetries     = 3
	ValkeyMinRetryDelay  = 100 * time.Millisecond
	ValkeyMaxRetryDelay  = 1 * time.Second
)

// セッションミラー設定
const (
	// MirrorWriteTimeout はミラー書き込みのタイムアウト
	MirrorWriteTimeout = 2 * time.Second
	// MirrorTTL はミラーエントリの有効期限
	MirrorTTL = 24 * time.Hour
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
