package config

import (
	"os"
	"testing"
)

// setRequiredEnv は必須環境変数をすべて設定する
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLOUD_API_URL", "http://cloud.example.com")
	t.Setenv("PIPELINED_API_URL", "http://pipelined.example.com")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("REDIS_PASS", "secret")
	t.Setenv("LOG_MASK_IMSI", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.CloudAPIURL != "http://cloud.example.com" {
		t.Errorf("CloudAPIURL = %q, want %q", cfg.CloudAPIURL, "http://cloud.example.com")
	}
	if cfg.PipelinedAPIURL != "http://pipelined.example.com" {
		t.Errorf("PipelinedAPIURL = %q, want %q", cfg.PipelinedAPIURL, "http://pipelined.example.com")
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9090")
	}
	if cfg.RedisPass != "secret" {
		t.Errorf("RedisPass = %q, want %q", cfg.RedisPass, "secret")
	}
	if cfg.LogMaskIMSI != false {
		t.Errorf("LogMaskIMSI = %v, want %v", cfg.LogMaskIMSI, false)
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ListenAddr != ":8088" {
		t.Errorf("ListenAddr default = %q, want %q", cfg.ListenAddr, ":8088")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel default = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogMaskIMSI != true {
		t.Errorf("LogMaskIMSI default = %v, want %v", cfg.LogMaskIMSI, true)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	os.Unsetenv("CLOUD_API_URL")
	os.Unsetenv("PIPELINED_API_URL")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")

	if _, err := Load(); err == nil {
		t.Error("Load() without CLOUD_API_URL should return error")
	}
}

func TestValkeyAddr(t *testing.T) {
	cfg := &Config{RedisHost: "valkey.local", RedisPort: "6380"}
	if got := cfg.ValkeyAddr(); got != "valkey.local:6380" {
		t.Errorf("ValkeyAddr() = %q, want %q", got, "valkey.local:6380")
	}
}
