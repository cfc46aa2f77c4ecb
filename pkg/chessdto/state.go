package chessdto

type PlayerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PieceView struct {
	Square string `json:"square"`
	Kind   string `json:"kind"`
	Team   string `json:"team"`
	Glyph  string `json:"glyph"`
}

type ScoreView struct {
	White float64 `json:"white"`
	Black float64 `json:"black"`
}

type MoveView struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Piece    string `json:"piece"`
	Captured string `json:"captured,omitempty"`
}

// GameState is the presentation snapshot of one game.
type GameState struct {
	GameID         string      `json:"game_id"`
	Room           string      `json:"room,omitempty"`
	White          PlayerView  `json:"white"`
	Black          PlayerView  `json:"black"`
	Turn           string      `json:"turn"`
	Status         string      `json:"status"`
	MoveCount      int         `json:"move_count"`
	Pieces         []PieceView `json:"pieces"`
	Score          ScoreView   `json:"score"`
	LastMove       *MoveView   `json:"last_move,omitempty"`
	FEN            string      `json:"fen"`
	BothKingsAlive bool        `json:"both_kings_alive"`
	Winner         string      `json:"winner,omitempty"`
	WinnerTeam     string      `json:"winner_team,omitempty"`
	Method         string      `json:"method,omitempty"`
	BoardImage     []byte      `json:"-"`
}

// Finished reports whether the game has ended.
func (s *GameState) Finished() bool {
	return s != nil && s.Status != "" && s.Status != "ACTIVE"
}

// StreamMessage is one frame of the live game stream.
type StreamMessage struct {
	Type  string       `json:"type"` // state | move | finish | resign | error
	State *GameState   `json:"state,omitempty"`
	Error *DomainError `json:"error,omitempty"`
}

// StreamCommand is a frame sent by a stream client.
type StreamCommand struct {
	Type     string `json:"type"` // move | resign
	PlayerID string `json:"player_id"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}
