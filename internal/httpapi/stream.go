package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/obslog"
	"github.com/park285/cheese-chess-rules/pkg/chessdto"
)

const streamWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// streamConn serializes writes; gorilla allows one concurrent writer.
type streamConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *streamConn) send(msg chessdto.StreamMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return s.conn.WriteJSON(msg)
}

// stream pushes the current state, then one frame per game event. Clients may
// send move and resign commands on the same socket; results arrive as events.
func (s *Server) stream(c *gin.Context) {
	id := c.Param("id")
	g, err := s.games.LoadGame(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		obslog.L().Warn("ws_upgrade_failed", zap.String("game_id", id), zap.Error(err))
		return
	}
	defer conn.Close()
	out := &streamConn{conn: conn}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := s.games.Subscribe(ctx, id)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		obslog.L().Warn("ws_subscribe_failed", zap.String("game_id", id), zap.Error(err))
		return
	}

	state, err := s.viewer.State(ctx, g, false)
	if err != nil || out.send(chessdto.StreamMessage{Type: "state", State: state}) != nil {
		return
	}

	go func() {
		defer cancel()
		s.readCommands(ctx, id, conn, out)
	}()

	events := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			ev, err := game.DecodeEvent(msg)
			if err != nil {
				obslog.L().Warn("ws_bad_event", zap.String("game_id", id), zap.Error(err))
				continue
			}
			st, err := s.viewer.State(ctx, ev.Game, false)
			if err != nil {
				continue
			}
			if err := out.send(chessdto.StreamMessage{Type: ev.Type, State: st}); err != nil {
				return
			}
		}
	}
}

func (s *Server) readCommands(ctx context.Context, id string, conn *websocket.Conn, out *streamConn) {
	for {
		var cmd chessdto.StreamCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				obslog.L().Debug("ws_read_end", zap.String("game_id", id), zap.Error(err))
			}
			return
		}
		var err error
		switch cmd.Type {
		case "move":
			_, err = s.games.PlayMove(ctx, id, cmd.PlayerID, cmd.From, cmd.To)
		case "resign":
			_, err = s.games.Resign(ctx, id, cmd.PlayerID)
		default:
			err = errors.New("unknown command " + cmd.Type)
		}
		if err == nil {
			continue
		}
		de := s.domainError(err)
		if sendErr := out.send(chessdto.StreamMessage{Type: "error", Error: &de}); sendErr != nil {
			return
		}
	}
}
