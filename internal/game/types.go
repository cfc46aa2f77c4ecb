package game

import (
	"errors"
	"strings"
	"time"

	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/domain"
)

// Status represents a game lifecycle state.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
	StatusResigned Status = "RESIGNED"
)

const (
	MethodKingCapture = "king_capture"
	MethodResignation = "resignation"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameFinished   = errors.New("game is not active")
	ErrNotParticipant = errors.New("player is not part of this game")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrConcurrentMove = errors.New("concurrent update on game")
	ErrSelfMatch      = errors.New("cannot play against yourself")
	ErrAlreadyPlaying = errors.New("player already has an active game")
	ErrInvalidPlayers = errors.New("invalid participants")
)

// LastMove is the most recent committed move, kept for highlighting.
type LastMove struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Piece    string `json:"piece"`
	Captured string `json:"captured,omitempty"`
}

// Game is the persisted state of a match.
type Game struct {
	ID         string               `json:"id"`
	Room       string               `json:"room,omitempty"`
	WhiteID    string               `json:"white_id"`
	WhiteName  string               `json:"white_name"`
	BlackID    string               `json:"black_id"`
	BlackName  string               `json:"black_name"`
	Pieces     []domain.PieceRecord `json:"pieces"`
	Turn       chess.Team           `json:"turn"`
	Status     Status               `json:"status"`
	MoveCount  int                  `json:"move_count"`
	LastMove   *LastMove            `json:"last_move,omitempty"`
	FEN        string               `json:"fen"`
	Winner     string               `json:"winner,omitempty"`
	WinnerTeam string               `json:"winner_team,omitempty"`
	Method     string               `json:"method,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// NewGameRequest names the two players; white moves first.
type NewGameRequest struct {
	Room      string
	WhiteID   string
	WhiteName string
	BlackID   string
	BlackName string
}

// MoveResult is returned by a successful PlayMove.
type MoveResult struct {
	Game     *Game
	Move     chess.Move
	Finished bool
}

// Event is published on the game's channel after every state change.
type Event struct {
	Type   string `json:"type"` // move | finish | resign
	GameID string `json:"game_id"`
	Game   *Game  `json:"game"`
}

// TeamOf returns the side playerID controls.
func (g *Game) TeamOf(playerID string) (chess.Team, bool) {
	id := strings.TrimSpace(playerID)
	switch {
	case id == "":
		return chess.White, false
	case g.WhiteID == id:
		return chess.White, true
	case g.BlackID == id:
		return chess.Black, true
	default:
		return chess.White, false
	}
}

func (g *Game) PlayerID(team chess.Team) string {
	if team == chess.Black {
		return g.BlackID
	}
	return g.WhiteID
}

func (g *Game) PlayerName(team chess.Team) string {
	name := g.WhiteName
	if team == chess.Black {
		name = g.BlackName
	}
	if strings.TrimSpace(name) == "" {
		return g.PlayerID(team)
	}
	return name
}

func (g *Game) Active() bool { return g != nil && g.Status == StatusActive }
