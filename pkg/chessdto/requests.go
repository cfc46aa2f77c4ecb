package chessdto

import "time"

type CreateGameRequest struct {
	Room      string `json:"room"`
	WhiteID   string `json:"white_id" binding:"required"`
	WhiteName string `json:"white_name"`
	BlackID   string `json:"black_id" binding:"required"`
	BlackName string `json:"black_name"`
}

type MoveRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
}

type ResignRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

type MoveResponse struct {
	State    *GameState `json:"state"`
	Move     MoveView   `json:"move"`
	Finished bool       `json:"finished"`
}

type ResultView struct {
	GameID     string    `json:"game_id"`
	White      string    `json:"white"`
	Black      string    `json:"black"`
	Winner     string    `json:"winner"`
	Method     string    `json:"method"`
	WhiteScore float64   `json:"white_score"`
	BlackScore float64   `json:"black_score"`
	MoveCount  int       `json:"move_count"`
	EndedAt    time.Time `json:"ended_at"`
}
