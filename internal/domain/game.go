package domain

import "time"

// PieceRecord is the stored form of one piece. Position, Kind and Team use
// their text encodings ("e4", "queen", "white").
type PieceRecord struct {
	Position string `json:"position"`
	Kind     string `json:"kind"`
	Team     string `json:"team"`
	Alive    bool   `json:"alive"`
}

// GameResult is the archived outcome of a finished game.
type GameResult struct {
	GameID     string
	Room       string
	WhiteID    string
	WhiteName  string
	BlackID    string
	BlackName  string
	Winner     string // "white" | "black"
	WinnerID   string
	Method     string // "king_capture" | "resignation"
	WhiteScore float64
	BlackScore float64
	FinalFEN   string
	MoveCount  int
	StartedAt  time.Time
	EndedAt    time.Time
	Duration   time.Duration
}
