// Package config はアプリケーション設定を提供する。
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config はアプリケーション設定を保持する
type Config struct {
	// HTTPサーバー設定
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8088"`

	// 課金クラウド（OCS/PCRF相当）設定
	CloudAPIURL string `envconfig:"CLOUD_API_URL" required:"true"`

	// フロー制御プレーン（pipelined相当）設定
	PipelinedAPIURL string `envconfig:"PIPELINED_API_URL" required:"true"`

	// Valkey接続設定（セッションミラー用）
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS"`

	// ログ設定
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogMaskIMSI bool   `envconfig:"LOG_MASK_IMSI" default:"true"`

	// Ginモード（release / debug / test）
	GinMode string `envconfig:"GIN_MODE" default:"release"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
