package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/adapter/chesspresenter"
	"github.com/park285/cheese-chess-rules/internal/bot"
	"github.com/park285/cheese-chess-rules/internal/chessbuilder"
	appcfg "github.com/park285/cheese-chess-rules/internal/config"
	"github.com/park285/cheese-chess-rules/internal/irisfast"
	"github.com/park285/cheese-chess-rules/internal/obslog"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cfg, err := appcfg.Load()
	if err != nil {
		logger.Fatal("config_error", zap.Error(err))
	}
	if err := cfg.RequireBot(); err != nil {
		logger.Fatal("config_error", zap.Error(err))
	}

	deps, err := chessbuilder.New(cfg)
	if err != nil {
		logger.Fatal("chess_init_error", zap.Error(err))
	}
	defer deps.Close()

	client := irisfast.NewClient(cfg.IrisBaseURL, irisfast.WithHeaderProvider(cfg.IdentityHeaders))
	ws := irisfast.NewWebSocket(cfg.IrisWSURL, 5)
	ws.SetHeaderProvider(cfg.IdentityHeaders)
	ws.OnStateChange(func(state irisfast.WebSocketState) {
		logger.Info("ws_state", zap.String("state", state.String()))
	})

	egress := irisfast.NewEgress(cfg.EgressMode, cfg.EgressDryRun, client, ws)
	handler := bot.NewHandler(
		bot.Options{Prefix: cfg.BotPrefix, AllowRoom: cfg.RoomAllowed},
		deps.Manager,
		deps.Viewer,
		deps.Formatter,
		chesspresenter.NewPresenter(egress),
	)
	ws.OnMessage(handler.OnMessage)

	cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ws.Connect(cctx); err != nil {
		cancel()
		logger.Fatal("ws_connect_error", zap.Error(err))
	}
	cancel()
	logger.Info("bot_started", zap.String("prefix", cfg.BotPrefix), zap.String("egress", cfg.EgressMode))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	_ = ws.Close(sctx)
}
