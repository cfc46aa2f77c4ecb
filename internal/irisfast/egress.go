package irisfast

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/obslog"
)

// Egress abstracts message/image sending over HTTP or WebSocket.
type Egress interface {
	SendText(ctx context.Context, room, message string) error
	SendImage(ctx context.Context, room, imageBase64 string) error
}

const (
	ModeHTTP = "http"
	ModeWS   = "ws"
	ModeAuto = "auto"
)

// NewEgress picks the transport for mode. auto prefers WS while connected and
// falls back to HTTP once per message. dryrun only logs.
func NewEgress(mode string, dryrun bool, c *Client, ws *WebSocket) Egress {
	switch mode {
	case ModeWS:
		return &wsEgress{ws: ws, dryrun: dryrun}
	case ModeAuto:
		return &autoEgress{ws: &wsEgress{ws: ws, dryrun: dryrun}, http: &httpEgress{c: c, dryrun: dryrun}}
	default:
		return &httpEgress{c: c, dryrun: dryrun}
	}
}

type httpEgress struct {
	c      *Client
	dryrun bool
}

func (h *httpEgress) SendText(ctx context.Context, room, message string) error {
	if h == nil || h.c == nil {
		return errors.New("http egress not available")
	}
	if h.dryrun {
		logDryRun("http", "text", room)
		return nil
	}
	return h.c.SendMessage(ctx, room, message)
}

func (h *httpEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	if h == nil || h.c == nil {
		return errors.New("http egress not available")
	}
	if h.dryrun {
		logDryRun("http", "image", room)
		return nil
	}
	return h.c.SendImage(ctx, room, imageBase64)
}

type wsEgress struct {
	ws     *WebSocket
	dryrun bool
}

func (w *wsEgress) connected() bool {
	return w != nil && w.ws != nil && w.ws.State() == WSStateConnected
}

func (w *wsEgress) SendText(ctx context.Context, room, message string) error {
	return w.send(ctx, ReplyRequest{Type: "text", Room: room, Data: message})
}

func (w *wsEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	return w.send(ctx, ReplyRequest{Type: "image", Room: room, Data: imageBase64})
}

func (w *wsEgress) send(ctx context.Context, req ReplyRequest) error {
	if w == nil || w.ws == nil {
		return errors.New("ws egress not available")
	}
	if w.dryrun {
		logDryRun("ws", req.Type, req.Room)
		return nil
	}
	return w.ws.WriteJSON(ctx, &req)
}

type autoEgress struct {
	ws   *wsEgress
	http *httpEgress
}

func (a *autoEgress) SendText(ctx context.Context, room, message string) error {
	if a.ws.connected() {
		err := a.ws.SendText(ctx, room, message)
		if err == nil {
			return nil
		}
		obslog.L().Warn("egress_fallback", zap.String("type", "text"), zap.String("room", room), zap.Error(err))
	}
	return a.http.SendText(ctx, room, message)
}

func (a *autoEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	if a.ws.connected() {
		err := a.ws.SendImage(ctx, room, imageBase64)
		if err == nil {
			return nil
		}
		obslog.L().Warn("egress_fallback", zap.String("type", "image"), zap.String("room", room), zap.Error(err))
	}
	return a.http.SendImage(ctx, room, imageBase64)
}

func logDryRun(transport, kind, room string) {
	obslog.L().Info("egress_dryrun",
		zap.String("transport", transport),
		zap.String("type", kind),
		zap.String("room", room),
	)
}
