// Package main はSession Gatewayのエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oyaguma3/session-gateway-poc/internal/config"
	"github.com/oyaguma3/session-gateway-poc/internal/enforcer"
	"github.com/oyaguma3/session-gateway-poc/internal/handler"
	"github.com/oyaguma3/session-gateway-poc/internal/logging"
	"github.com/oyaguma3/session-gateway-poc/internal/manager"
	"github.com/oyaguma3/session-gateway-poc/internal/pipelined"
	"github.com/oyaguma3/session-gateway-poc/internal/reporter"
	"github.com/oyaguma3/session-gateway-poc/internal/server"
	"github.com/oyaguma3/session-gateway-poc/internal/store"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	slog.Info("starting session-gateway",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"cloud_api_url", cfg.CloudAPIURL,
		"pipelined_api_url", cfg.PipelinedAPIURL,
	)

	// 3. Valkey接続（セッションミラー用）
	valkeyClient, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("failed to connect to Valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("connected to Valkey", "addr", cfg.ValkeyAddr())

	// 4. 依存オブジェクト生成
	masker := logging.NewMasker(cfg.LogMaskIMSI)
	mirror := store.NewSessionMirror(valkeyClient)
	flowGateway := pipelined.NewClient(cfg)
	cloudReporter := reporter.NewClient(cfg)

	// Local Enforcer
	enf := enforcer.New(flowGateway, cloudReporter, mirror, masker)
	enfCtx, enfCancel := context.WithCancel(context.Background())
	defer enfCancel()
	go enf.Run(enfCtx)

	// ユースケース
	sessionManager := manager.NewSessionManager(enf, cloudReporter, masker)

	// ハンドラー
	sessionHandler := handler.NewSessionHandler(sessionManager, cfg)

	// 5. サーバー起動
	srv := server.New(cfg, sessionHandler)

	// 6. Graceful Shutdown設定
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 7. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler).With("app", "session-gateway")
	slog.SetDefault(logger)
}
