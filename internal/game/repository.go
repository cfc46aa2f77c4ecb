package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/park285/cheese-chess-rules/internal/domain"
)

var ErrResultNotFound = errors.New("game result not found")

// Repository archives finished games.
type Repository interface {
	SaveResult(ctx context.Context, res *domain.GameResult) error
	GetResult(ctx context.Context, gameID string) (*domain.GameResult, error)
	RecentResults(ctx context.Context, playerID string, limit int) ([]*domain.GameResult, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS chess_results (
	game_id      TEXT PRIMARY KEY,
	room         TEXT NOT NULL DEFAULT '',
	white_id     TEXT NOT NULL,
	white_name   TEXT NOT NULL DEFAULT '',
	black_id     TEXT NOT NULL,
	black_name   TEXT NOT NULL DEFAULT '',
	winner       TEXT NOT NULL,
	winner_id    TEXT NOT NULL DEFAULT '',
	method       TEXT NOT NULL,
	white_score  DOUBLE PRECISION NOT NULL,
	black_score  DOUBLE PRECISION NOT NULL,
	final_fen    TEXT NOT NULL DEFAULT '',
	move_count   INTEGER NOT NULL DEFAULT 0,
	started_at   TIMESTAMPTZ NOT NULL,
	ended_at     TIMESTAMPTZ NOT NULL,
	duration_ms  BIGINT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS chess_results_white_idx ON chess_results (white_id, ended_at DESC);
CREATE INDEX IF NOT EXISTS chess_results_black_idx ON chess_results (black_id, ended_at DESC);`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresRepository{db: db}, nil
}

// EnsureSchema creates the results table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure chess_results schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveResult upserts a finished game.
func (r *PostgresRepository) SaveResult(ctx context.Context, res *domain.GameResult) error {
	if res == nil {
		return fmt.Errorf("nil game result")
	}
	const q = `INSERT INTO chess_results (
		game_id, room, white_id, white_name, black_id, black_name,
		winner, winner_id, method, white_score, black_score,
		final_fen, move_count, started_at, ended_at, duration_ms
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	ON CONFLICT (game_id) DO UPDATE SET
		winner=EXCLUDED.winner,
		winner_id=EXCLUDED.winner_id,
		method=EXCLUDED.method,
		white_score=EXCLUDED.white_score,
		black_score=EXCLUDED.black_score,
		final_fen=EXCLUDED.final_fen,
		move_count=EXCLUDED.move_count,
		ended_at=EXCLUDED.ended_at,
		duration_ms=EXCLUDED.duration_ms`

	_, err := r.db.ExecContext(ctx, q,
		res.GameID, res.Room,
		res.WhiteID, res.WhiteName,
		res.BlackID, res.BlackName,
		res.Winner, res.WinnerID, res.Method,
		res.WhiteScore, res.BlackScore,
		res.FinalFEN, res.MoveCount,
		res.StartedAt, res.EndedAt, res.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("upsert chess result: %w", err)
	}
	return nil
}

const selectResult = `SELECT game_id, room, white_id, white_name, black_id, black_name,
	winner, winner_id, method, white_score, black_score, final_fen, move_count,
	started_at, ended_at, duration_ms FROM chess_results`

func (r *PostgresRepository) GetResult(ctx context.Context, gameID string) (*domain.GameResult, error) {
	row := r.db.QueryRowContext(ctx, selectResult+` WHERE game_id = $1`, gameID)
	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chess result: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) RecentResults(ctx context.Context, playerID string, limit int) ([]*domain.GameResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		selectResult+` WHERE white_id = $1 OR black_id = $1 ORDER BY ended_at DESC LIMIT $2`,
		playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query chess results: %w", err)
	}
	defer rows.Close()

	var out []*domain.GameResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chess result: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (*domain.GameResult, error) {
	var (
		res        domain.GameResult
		durationMS int64
	)
	err := s.Scan(
		&res.GameID, &res.Room,
		&res.WhiteID, &res.WhiteName,
		&res.BlackID, &res.BlackName,
		&res.Winner, &res.WinnerID, &res.Method,
		&res.WhiteScore, &res.BlackScore,
		&res.FinalFEN, &res.MoveCount,
		&res.StartedAt, &res.EndedAt, &durationMS,
	)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Duration(durationMS) * time.Millisecond
	return &res, nil
}
