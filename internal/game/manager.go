package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/domain"
	"github.com/park285/cheese-chess-rules/internal/obslog"
)

const (
	defaultTTL     = 24 * time.Hour
	createAttempts = 8
)

// Manager keeps live games in Redis. Every mutation of a game runs inside a
// WATCH on its key, so at most one move per game id commits at a time.
type Manager struct {
	rdb  *redis.Client
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

type Option func(*Manager)

// WithRepository wires the archive that receives finished games.
func WithRepository(r Repository) Option {
	return func(m *Manager) { m.repo = r }
}

func WithTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(redisURL string, opts ...Option) (*Manager, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for game manager")
	}
	ropts, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(ropts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewManagerWithClient(rdb, opts...), nil
}

func NewManagerWithClient(rdb *redis.Client, opts ...Option) *Manager {
	m := &Manager{rdb: rdb, ttl: defaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Close() error {
	if m == nil || m.rdb == nil {
		return nil
	}
	return m.rdb.Close()
}

// CreateGame starts a game from the standard layout.
func (m *Manager) CreateGame(ctx context.Context, req NewGameRequest) (*Game, error) {
	if m == nil || m.rdb == nil {
		return nil, fmt.Errorf("game manager not initialized")
	}
	whiteID, blackID := strings.TrimSpace(req.WhiteID), strings.TrimSpace(req.BlackID)
	if whiteID == "" || blackID == "" {
		return nil, ErrInvalidPlayers
	}
	if whiteID == blackID {
		return nil, ErrSelfMatch
	}

	board := chess.NewBoard()
	now := m.now()
	g := &Game{
		ID:        uuid.NewString(),
		Room:      strings.TrimSpace(req.Room),
		WhiteID:   whiteID,
		WhiteName: strings.TrimSpace(req.WhiteName),
		BlackID:   blackID,
		BlackName: strings.TrimSpace(req.BlackName),
		Pieces:    Snapshot(board),
		Turn:      board.Turn(),
		Status:    StatusActive,
		FEN:       BoardFEN(board, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}

	// Both players are reserved in the same transaction as the game itself; a
	// lost race is retried so the loser sees the winner's reservation.
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = m.rdb.Watch(ctx, func(tx *redis.Tx) error {
			for _, id := range []string{whiteID, blackID} {
				busy, err := m.reserved(ctx, tx, id)
				if err != nil {
					return err
				}
				if busy {
					return fmt.Errorf("%w: %s", ErrAlreadyPlaying, id)
				}
			}
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, gameKey(g.ID), raw, m.ttl)
				pipe.Set(ctx, activeKey(whiteID), g.ID, m.ttl)
				pipe.Set(ctx, activeKey(blackID), g.ID, m.ttl)
				return nil
			})
			return err
		}, activeKey(whiteID), activeKey(blackID))
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrConcurrentMove
	}
	if err != nil {
		return nil, err
	}
	obslog.L().Info("game_create",
		zap.String("game_id", g.ID),
		zap.String("room", g.Room),
		zap.String("white_id", g.WhiteID),
		zap.String("black_id", g.BlackID),
	)
	return g, nil
}

// reserved reports whether playerID is bound to a game that is still active.
// Reservations left behind by expired or finished games do not count.
func (m *Manager) reserved(ctx context.Context, tx *redis.Tx, playerID string) (bool, error) {
	id, err := tx.Get(ctx, activeKey(playerID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	g, err := readGame(ctx, tx, gameKey(id))
	if errors.Is(err, ErrGameNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return g.Active(), nil
}

// LoadGame returns the stored game or ErrGameNotFound.
func (m *Manager) LoadGame(ctx context.Context, id string) (*Game, error) {
	g, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

// ActiveGameByPlayer returns the game playerID is currently reserved for.
func (m *Manager) ActiveGameByPlayer(ctx context.Context, playerID string) (*Game, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, ErrGameNotFound
	}
	id, err := m.rdb.Get(ctx, activeKey(playerID)).Result()
	if err == redis.Nil {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	g, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !g.Active() {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Board restores the rules engine state of g.
func (m *Manager) Board(g *Game) (*chess.Board, error) {
	if g == nil {
		return nil, ErrGameNotFound
	}
	return Restore(g.Pieces, g.Turn)
}

// Scores returns the current material score of both sides.
func (m *Manager) Scores(g *Game) (white, black float64, err error) {
	b, err := m.Board(g)
	if err != nil {
		return 0, 0, err
	}
	return b.CalculateScore(chess.White), b.CalculateScore(chess.Black), nil
}

// RecentResults lists archived games of playerID, newest first. Without a
// repository there is no history and the result is empty.
func (m *Manager) RecentResults(ctx context.Context, playerID string, limit int) ([]*domain.GameResult, error) {
	if m == nil || m.repo == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return m.repo.RecentResults(ctx, strings.TrimSpace(playerID), limit)
}

// PlayMove applies from→to (algebraic squares) for playerID. Rule rejections
// from the engine are returned unchanged; a lost race on the game key yields
// ErrConcurrentMove.
func (m *Manager) PlayMove(ctx context.Context, gameID, playerID, from, to string) (*MoveResult, error) {
	src, err := chess.ParsePosition(from)
	if err != nil {
		return nil, err
	}
	dst, err := chess.ParsePosition(to)
	if err != nil {
		return nil, err
	}

	key := gameKey(gameID)
	var res *MoveResult
	err = m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGame(ctx, tx, key)
		if err != nil {
			return err
		}
		if !cur.Active() {
			return ErrGameFinished
		}
		team, ok := cur.TeamOf(playerID)
		if !ok {
			return ErrNotParticipant
		}
		if team != cur.Turn {
			return ErrNotYourTurn
		}
		board, err := Restore(cur.Pieces, cur.Turn)
		if err != nil {
			return fmt.Errorf("restore game %s: %w", cur.ID, err)
		}
		mv, err := board.MovePiece(src, dst)
		if err != nil {
			return err
		}

		cur.MoveCount++
		cur.Pieces = Snapshot(board)
		cur.Turn = board.Turn()
		cur.FEN = BoardFEN(board, cur.MoveCount)
		cur.UpdatedAt = m.now()
		cur.LastMove = &LastMove{From: src.String(), To: dst.String(), Piece: mv.Piece.Kind().String()}
		if mv.Captured != nil {
			cur.LastMove.Captured = mv.Captured.Kind().String()
		}
		finished := false
		if !board.IsBothKingsAlive() {
			winner, werr := board.Winner()
			if werr != nil {
				return werr
			}
			cur.Status = StatusFinished
			cur.WinnerTeam = winner.String()
			cur.Winner = cur.PlayerID(winner)
			cur.Method = MethodKingCapture
			finished = true
		}

		if err := m.commit(ctx, tx, cur); err != nil {
			return err
		}
		res = &MoveResult{Game: cur, Move: mv, Finished: finished}
		return nil
	}, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrConcurrentMove
		}
		if chess.IsRuleViolation(err) {
			obslog.L().Info("game_move_rejected",
				zap.String("game_id", gameID),
				zap.String("player_id", playerID),
				zap.String("from", src.String()),
				zap.String("to", dst.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	g := res.Game
	obslog.L().Info("game_move",
		zap.String("game_id", g.ID),
		zap.String("player_id", strings.TrimSpace(playerID)),
		zap.String("from", g.LastMove.From),
		zap.String("to", g.LastMove.To),
		zap.String("captured", g.LastMove.Captured),
		zap.String("turn", g.Turn.String()),
		zap.Int("move_count", g.MoveCount),
		zap.String("status", string(g.Status)),
	)
	event := "move"
	if res.Finished {
		event = "finish"
		m.archive(ctx, g)
	}
	m.publish(ctx, event, g)
	return res, nil
}

// Resign ends the game in favour of the opponent of playerID.
func (m *Manager) Resign(ctx context.Context, gameID, playerID string) (*Game, error) {
	key := gameKey(gameID)
	var g *Game
	err := m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGame(ctx, tx, key)
		if err != nil {
			return err
		}
		if !cur.Active() {
			return ErrGameFinished
		}
		team, ok := cur.TeamOf(playerID)
		if !ok {
			return ErrNotParticipant
		}
		winner := team.Opposite()
		cur.Status = StatusResigned
		cur.WinnerTeam = winner.String()
		cur.Winner = cur.PlayerID(winner)
		cur.Method = MethodResignation
		cur.UpdatedAt = m.now()
		if err := m.commit(ctx, tx, cur); err != nil {
			return err
		}
		g = cur
		return nil
	}, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrConcurrentMove
		}
		return nil, err
	}
	obslog.L().Info("game_resign",
		zap.String("game_id", g.ID),
		zap.String("resigner", strings.TrimSpace(playerID)),
		zap.String("winner", g.Winner),
	)
	m.archive(ctx, g)
	m.publish(ctx, "resign", g)
	return g, nil
}

// Subscribe listens for events of one game. The caller closes the PubSub.
func (m *Manager) Subscribe(ctx context.Context, gameID string) *redis.PubSub {
	return m.rdb.Subscribe(ctx, eventsKey(gameID))
}

// DecodeEvent parses a payload received from Subscribe.
func DecodeEvent(msg *redis.Message) (*Event, error) {
	if msg == nil {
		return nil, fmt.Errorf("nil message")
	}
	var ev Event
	if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &ev, nil
}

func (m *Manager) publish(ctx context.Context, kind string, g *Game) {
	raw, err := json.Marshal(Event{Type: kind, GameID: g.ID, Game: g})
	if err != nil {
		return
	}
	if err := m.rdb.Publish(ctx, eventsKey(g.ID), raw).Err(); err != nil {
		obslog.L().Warn("game_event_publish_error", zap.String("game_id", g.ID), zap.Error(err))
	}
}

func readGame(ctx context.Context, tx *redis.Tx, key string) (*Game, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	var g Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	return &g, nil
}

// commit writes g inside the WATCH of its key. Reservations follow the game:
// refreshed while it is active, released once it ends.
func (m *Manager) commit(ctx context.Context, tx *redis.Tx, g *Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	var release []string
	if !g.Active() {
		for _, p := range []string{g.WhiteID, g.BlackID} {
			if cur, _ := tx.Get(ctx, activeKey(p)).Result(); cur == g.ID {
				release = append(release, activeKey(p))
			}
		}
	}
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKey(g.ID), raw, m.ttl)
		if g.Active() {
			pipe.Expire(ctx, activeKey(g.WhiteID), m.ttl)
			pipe.Expire(ctx, activeKey(g.BlackID), m.ttl)
		} else if len(release) > 0 {
			pipe.Del(ctx, release...)
		}
		return nil
	})
	return err
}

func (m *Manager) get(ctx context.Context, id string) (*Game, error) {
	raw, err := m.rdb.Get(ctx, gameKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var g Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// archive stores the result of a finished game. When the repository refuses,
// the game is kept without expiry and queued for RetryPendingArchives.
func (m *Manager) archive(ctx context.Context, g *Game) {
	if err := m.persistIfFinal(ctx, g); err != nil {
		pipe := m.rdb.TxPipeline()
		pipe.SAdd(ctx, pendingArchiveKey, g.ID)
		pipe.Persist(ctx, gameKey(g.ID))
		if _, perr := pipe.Exec(ctx); perr != nil {
			obslog.L().Error("result_pending_mark_error", zap.String("game_id", g.ID), zap.Error(perr))
		}
		return
	}
	if n, err := m.rdb.SCard(ctx, pendingArchiveKey).Result(); err == nil && n > 0 {
		_, _ = m.RetryPendingArchives(ctx)
	}
}

// RetryPendingArchives re-sends results whose first archive attempt failed and
// returns how many were stored.
func (m *Manager) RetryPendingArchives(ctx context.Context) (int, error) {
	if m == nil || m.repo == nil {
		return 0, nil
	}
	ids, err := m.rdb.SMembers(ctx, pendingArchiveKey).Result()
	if err != nil {
		return 0, err
	}
	stored := 0
	var errs []error
	for _, id := range ids {
		g, err := m.get(ctx, id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if g == nil {
			obslog.L().Warn("result_pending_lost", zap.String("game_id", id))
			m.rdb.SRem(ctx, pendingArchiveKey, id)
			continue
		}
		if err := m.persistIfFinal(ctx, g); err != nil {
			errs = append(errs, err)
			continue
		}
		pipe := m.rdb.TxPipeline()
		pipe.SRem(ctx, pendingArchiveKey, id)
		pipe.Expire(ctx, gameKey(id), m.ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			errs = append(errs, err)
			continue
		}
		stored++
	}
	return stored, errors.Join(errs...)
}

// persistIfFinal archives a finished game when a repository is attached.
func (m *Manager) persistIfFinal(ctx context.Context, g *Game) error {
	if m.repo == nil || g == nil || g.Active() {
		return nil
	}
	res, err := resultOf(g)
	if err != nil {
		return err
	}
	if err := m.repo.SaveResult(ctx, res); err != nil {
		obslog.L().Error("result_persist_error", zap.String("game_id", g.ID), zap.Error(err))
		return err
	}
	obslog.L().Info("result_persist",
		zap.String("game_id", g.ID),
		zap.String("winner", res.Winner),
		zap.String("method", res.Method),
		zap.Float64("white_score", res.WhiteScore),
		zap.Float64("black_score", res.BlackScore),
	)
	return nil
}

func resultOf(g *Game) (*domain.GameResult, error) {
	board, err := Restore(g.Pieces, g.Turn)
	if err != nil {
		return nil, err
	}
	d := g.UpdatedAt.Sub(g.CreatedAt)
	if d < 0 {
		d = 0
	}
	return &domain.GameResult{
		GameID:     g.ID,
		Room:       g.Room,
		WhiteID:    g.WhiteID,
		WhiteName:  g.WhiteName,
		BlackID:    g.BlackID,
		BlackName:  g.BlackName,
		Winner:     g.WinnerTeam,
		WinnerID:   g.Winner,
		Method:     g.Method,
		WhiteScore: board.CalculateScore(chess.White),
		BlackScore: board.CalculateScore(chess.Black),
		FinalFEN:   g.FEN,
		MoveCount:  g.MoveCount,
		StartedAt:  g.CreatedAt,
		EndedAt:    g.UpdatedAt,
		Duration:   d,
	}, nil
}

const pendingArchiveKey = "chess:archive:pending"

func gameKey(id string) string   { return "chess:game:" + strings.TrimSpace(id) }
func activeKey(id string) string { return "chess:active:" + strings.TrimSpace(id) }
func eventsKey(id string) string { return "chess:events:" + strings.TrimSpace(id) }

// ParseRedisURL accepts redis:// and rediss:// URLs, including user, password,
// db and query options. rediss enables TLS.
func ParseRedisURL(raw string) (*redis.Options, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return opts, nil
}
