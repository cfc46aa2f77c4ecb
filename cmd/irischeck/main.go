// irischeck probes the Iris bridge: it optionally posts one reply and then
// watches the message stream for a short window.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/irisfast"
	"github.com/park285/cheese-chess-rules/internal/obslog"
)

func main() {
	room := flag.String("room", "", "room to send a probe reply to")
	text := flag.String("text", "irischeck", "probe reply text")
	watch := flag.Duration("watch", 10*time.Second, "how long to observe the WS stream")
	flag.Parse()

	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	baseURL := strings.TrimSpace(os.Getenv("IRIS_BASE_URL"))
	wsURL := strings.TrimSpace(os.Getenv("IRIS_WS_URL"))
	if baseURL == "" {
		logger.Fatal("IRIS_BASE_URL is required")
	}
	headers := func() map[string]string {
		h := map[string]string{}
		for env, header := range map[string]string{
			"X_USER_ID":    "X-User-Id",
			"X_USER_EMAIL": "X-User-Email",
			"X_SESSION_ID": "X-Session-Id",
		} {
			if v := strings.TrimSpace(os.Getenv(env)); v != "" {
				h[header] = v
			}
		}
		return h
	}

	if *room != "" {
		client := irisfast.NewClient(baseURL, irisfast.WithHeaderProvider(headers), irisfast.WithTimeout(8*time.Second))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := client.SendMessage(ctx, *room, *text)
		cancel()
		if err != nil {
			logger.Error("reply_probe_failed", zap.String("room", *room), zap.Error(err))
		} else {
			logger.Info("reply_probe_ok", zap.String("room", *room))
		}
	}

	if wsURL == "" {
		logger.Info("IRIS_WS_URL not set; skipping WS check")
		return
	}
	ws := irisfast.NewWebSocket(wsURL, 0)
	ws.SetHeaderProvider(headers)
	ws.OnStateChange(func(state irisfast.WebSocketState) {
		logger.Info("ws_state", zap.String("state", state.String()))
	})
	ws.OnMessage(func(msg *irisfast.Message) {
		logger.Info("ws_message",
			zap.String("room", msg.RoomID()),
			zap.String("from", msg.SenderName()),
			zap.String("text", msg.Text()),
		)
	})

	cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer ccancel()
	if err := ws.Connect(cctx); err != nil {
		logger.Error("ws_connect_failed", zap.Error(err))
		return
	}
	time.Sleep(*watch)

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	_ = ws.Close(sctx)
}
