// Package bot turns chat commands into game operations and replies.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/adapter/chesspresenter"
	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/domain"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/irisfast"
	"github.com/park285/cheese-chess-rules/internal/obslog"
	"github.com/park285/cheese-chess-rules/pkg/chessdto"
)

const (
	commandWord    = "체스"
	historyLimit   = 5
	commandTimeout = 15 * time.Second
)

// Games is the part of game.Manager the handler drives.
type Games interface {
	OpenChallenge(ctx context.Context, c game.Challenge) (*game.Challenge, error)
	AcceptChallenge(ctx context.Context, room, accepterID, accepterName string) (*game.Game, error)
	ActiveGameByPlayer(ctx context.Context, playerID string) (*game.Game, error)
	PlayMove(ctx context.Context, gameID, playerID, from, to string) (*game.MoveResult, error)
	Resign(ctx context.Context, gameID, playerID string) (*game.Game, error)
	RecentResults(ctx context.Context, playerID string, limit int) ([]*domain.GameResult, error)
}

type Handler struct {
	prefix    string
	allowRoom func(room string) bool
	games     Games
	viewer    *chesspresenter.Viewer
	formatter *chesspresenter.Formatter
	presenter *chesspresenter.Presenter
}

type Options struct {
	Prefix    string
	AllowRoom func(room string) bool
}

func NewHandler(opts Options, games Games, viewer *chesspresenter.Viewer, formatter *chesspresenter.Formatter, presenter *chesspresenter.Presenter) *Handler {
	allow := opts.AllowRoom
	if allow == nil {
		allow = func(string) bool { return true }
	}
	return &Handler{
		prefix:    strings.TrimSpace(opts.Prefix),
		allowRoom: allow,
		games:     games,
		viewer:    viewer,
		formatter: formatter,
		presenter: presenter,
	}
}

// OnMessage is the irisfast callback. Commands run off the read loop.
func (h *Handler) OnMessage(msg *irisfast.Message) {
	if !h.accepts(msg) {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		h.Handle(ctx, msg)
	}()
}

func (h *Handler) accepts(msg *irisfast.Message) bool {
	if msg == nil || msg.Text() == "" {
		return false
	}
	if !h.allowRoom(msg.RoomID()) {
		obslog.L().Debug("room_not_allowed", zap.String("room", msg.RoomID()))
		return false
	}
	return strings.HasPrefix(msg.Text(), h.prefix)
}

// command is one parsed chat request.
type command struct {
	room   string
	player string
	name   string
	sub    string
	args   []string
}

func (h *Handler) parse(msg *irisfast.Message) (command, bool) {
	raw := strings.TrimSpace(strings.TrimPrefix(msg.Text(), h.prefix))
	fields := strings.Fields(raw)
	if len(fields) == 0 || fields[0] != commandWord {
		return command{}, false
	}
	cmd := command{
		room:   msg.RoomID(),
		player: playerKey(msg),
		name:   msg.SenderName(),
	}
	if cmd.name == "" {
		cmd.name = cmd.player
	}
	if len(fields) > 1 {
		cmd.sub = fields[1]
		cmd.args = fields[2:]
	}
	return cmd, true
}

// Handle runs one command synchronously.
func (h *Handler) Handle(ctx context.Context, msg *irisfast.Message) {
	if !h.accepts(msg) {
		return
	}
	cmd, ok := h.parse(msg)
	if !ok {
		return
	}
	logger := obslog.L().With(
		zap.String("room", cmd.room),
		zap.String("player", cmd.player),
		zap.String("sub", cmd.sub),
	)
	if cmd.player == "" {
		logger.Warn("command_without_sender")
		return
	}

	var err error
	switch cmd.sub {
	case "시작":
		err = h.start(ctx, cmd)
	case "수락":
		err = h.accept(ctx, cmd)
	case "이동":
		err = h.move(ctx, cmd)
	case "현황":
		err = h.status(ctx, cmd)
	case "점수":
		err = h.score(ctx, cmd)
	case "기권":
		err = h.resign(ctx, cmd)
	case "기록":
		err = h.history(ctx, cmd)
	default:
		err = h.presenter.Text(ctx, cmd.room, h.formatter.Help())
	}
	if err != nil {
		logger.Warn("command_failed", zap.Error(err))
	}
}

// start opens a challenge. The opponent is only known by the mentioned name
// until they accept from their own account.
func (h *Handler) start(ctx context.Context, cmd command) error {
	if len(cmd.args) == 0 {
		return h.reject(ctx, cmd, game.ErrInvalidPlayers, nil)
	}
	c, err := h.games.OpenChallenge(ctx, game.Challenge{
		Room:           cmd.room,
		ChallengerID:   cmd.player,
		ChallengerName: cmd.name,
		TargetName:     cmd.args[0],
	})
	if err != nil {
		return h.reject(ctx, cmd, err, nil)
	}
	return h.presenter.Text(ctx, cmd.room, h.formatter.Challenge(c.ChallengerName, c.TargetName))
}

func (h *Handler) accept(ctx context.Context, cmd command) error {
	g, err := h.games.AcceptChallenge(ctx, cmd.room, cmd.player, cmd.name)
	if err != nil {
		return h.reject(ctx, cmd, err, nil)
	}
	state, err := h.viewer.State(ctx, g, true)
	if err != nil {
		return err
	}
	return h.presenter.Board(ctx, cmd.room, h.formatter.Started(state), state)
}

func (h *Handler) move(ctx context.Context, cmd command) error {
	from, to, ok := parseSquares(cmd.args)
	if !ok {
		err := fmt.Errorf("%w: %s", chess.ErrInvalidPosition, strings.Join(cmd.args, " "))
		return h.presenter.Text(ctx, cmd.room, h.formatter.Rejection(err, nil))
	}
	g, err := h.games.ActiveGameByPlayer(ctx, cmd.player)
	if err != nil {
		return h.reject(ctx, cmd, err, nil)
	}
	res, err := h.games.PlayMove(ctx, g.ID, cmd.player, from, to)
	if err != nil {
		return h.reject(ctx, cmd, err, g)
	}
	state, err := h.viewer.State(ctx, res.Game, true)
	if err != nil {
		return err
	}
	return h.presenter.Board(ctx, cmd.room, h.formatter.Move(state), state)
}

func (h *Handler) status(ctx context.Context, cmd command) error {
	g, err := h.games.ActiveGameByPlayer(ctx, cmd.player)
	if err != nil {
		return h.reject(ctx, cmd, err, nil)
	}
	state, err := h.viewer.State(ctx, g, true)
	if err != nil {
		return err
	}
	return h.presenter.Board(ctx, cmd.room, h.formatter.Status(state), state)
}

func (h *Handler) score(ctx context.Context, cmd command) error {
	g, err := h.games.ActiveGameByPlayer(ctx, cmd.player)
	if err != nil {
		return h.reject(ctx, cmd, err, nil)
	}
	state, err := h.viewer.State(ctx, g, false)
	if err != nil {
		return err
	}
	return h.presenter.Text(ctx, cmd.room, h.formatter.Score(state))
}

func (h *Handler) resign(ctx context.Context, cmd command) error {
	g, err := h.games.ActiveGameByPlayer(ctx, cmd.player)
	if err != nil {
		return h.reject(ctx, cmd, err, nil)
	}
	done, err := h.games.Resign(ctx, g.ID, cmd.player)
	if err != nil {
		return h.reject(ctx, cmd, err, g)
	}
	state, err := h.viewer.State(ctx, done, true)
	if err != nil {
		return err
	}
	return h.presenter.Board(ctx, cmd.room, h.formatter.Resign(state), state)
}

func (h *Handler) history(ctx context.Context, cmd command) error {
	results, err := h.games.RecentResults(ctx, cmd.player, historyLimit)
	if err != nil {
		return err
	}
	views := make([]chessdto.ResultView, 0, len(results))
	for _, r := range results {
		views = append(views, chesspresenter.ToResultView(r))
	}
	return h.presenter.Text(ctx, cmd.room, h.formatter.Results(views))
}

// reject answers a refused command. Unexpected errors are returned for logging
// after the generic reply.
func (h *Handler) reject(ctx context.Context, cmd command, cause error, g *game.Game) error {
	var state *chessdto.GameState
	if g != nil {
		if s, err := h.viewer.State(ctx, g, false); err == nil {
			state = s
		}
	}
	if err := h.presenter.Text(ctx, cmd.room, h.formatter.Rejection(cause, state)); err != nil {
		return err
	}
	if chesspresenter.MessageKey(cause) == "" {
		return cause
	}
	return nil
}

// playerKey identifies a chat user by account id. Display names are neither
// unique nor stable and only serve as a fallback for payloads without one.
func playerKey(msg *irisfast.Message) string {
	if id := msg.UserID(); id != "" {
		return id
	}
	return msg.SenderName()
}

// parseSquares accepts "e2 e4", "e2e4" and "e2-e4".
func parseSquares(args []string) (string, string, bool) {
	switch len(args) {
	case 1:
		s := strings.ReplaceAll(strings.ToLower(args[0]), "-", "")
		if len(s) != 4 {
			return "", "", false
		}
		return s[:2], s[2:], true
	case 2:
		return strings.ToLower(args[0]), strings.ToLower(args[1]), true
	default:
		return "", "", false
	}
}
