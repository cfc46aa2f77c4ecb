package chesspresenter

import (
	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/domain"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/pkg/chessdto"
)

// ToState builds the presentation snapshot of g. board must be the restored
// state of g.
func ToState(g *game.Game, board *chess.Board) *chessdto.GameState {
	if g == nil || board == nil {
		return nil
	}
	pieces := board.AlivePieces()
	views := make([]chessdto.PieceView, 0, len(pieces))
	for _, p := range pieces {
		views = append(views, chessdto.PieceView{
			Square: p.Position().String(),
			Kind:   p.Kind().String(),
			Team:   p.Team().String(),
			Glyph:  string(p.Glyph()),
		})
	}
	return &chessdto.GameState{
		GameID:    g.ID,
		Room:      g.Room,
		White:     chessdto.PlayerView{ID: g.WhiteID, Name: g.PlayerName(chess.White)},
		Black:     chessdto.PlayerView{ID: g.BlackID, Name: g.PlayerName(chess.Black)},
		Turn:      board.Turn().String(),
		Status:    string(g.Status),
		MoveCount: g.MoveCount,
		Pieces:    views,
		Score: chessdto.ScoreView{
			White: board.CalculateScore(chess.White),
			Black: board.CalculateScore(chess.Black),
		},
		LastMove:       ToMoveView(g.LastMove),
		FEN:            g.FEN,
		BothKingsAlive: board.IsBothKingsAlive(),
		Winner:         g.Winner,
		WinnerTeam:     g.WinnerTeam,
		Method:         g.Method,
	}
}

func ToMoveView(m *game.LastMove) *chessdto.MoveView {
	if m == nil {
		return nil
	}
	return &chessdto.MoveView{From: m.From, To: m.To, Piece: m.Piece, Captured: m.Captured}
}

func ToResultView(r *domain.GameResult) chessdto.ResultView {
	white, black := r.WhiteName, r.BlackName
	if white == "" {
		white = r.WhiteID
	}
	if black == "" {
		black = r.BlackID
	}
	return chessdto.ResultView{
		GameID:     r.GameID,
		White:      white,
		Black:      black,
		Winner:     r.Winner,
		Method:     r.Method,
		WhiteScore: r.WhiteScore,
		BlackScore: r.BlackScore,
		MoveCount:  r.MoveCount,
		EndedAt:    r.EndedAt,
	}
}
