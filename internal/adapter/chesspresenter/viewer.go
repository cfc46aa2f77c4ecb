package chesspresenter

import (
	"context"
	"fmt"

	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/render"
	"github.com/park285/cheese-chess-rules/pkg/chessdto"
)

// Viewer turns a stored game into a snapshot, optionally with a board image.
type Viewer struct {
	renderer render.BoardRenderer
}

// NewViewer accepts a nil renderer; snapshots then carry no image.
func NewViewer(renderer render.BoardRenderer) *Viewer {
	return &Viewer{renderer: renderer}
}

func (v *Viewer) State(ctx context.Context, g *game.Game, withImage bool) (*chessdto.GameState, error) {
	if g == nil {
		return nil, game.ErrGameNotFound
	}
	board, err := game.Restore(g.Pieces, g.Turn)
	if err != nil {
		return nil, fmt.Errorf("restore board: %w", err)
	}
	state := ToState(g, board)
	if !withImage || v == nil || v.renderer == nil {
		return state, nil
	}
	img, err := v.renderer.RenderPNG(ctx, board, renderOptions(g, board))
	if err != nil {
		return nil, fmt.Errorf("render board: %w", err)
	}
	state.BoardImage = img
	return state, nil
}

// HUD text stays ASCII; the bitmap face has no Hangul glyphs.
func renderOptions(g *game.Game, board *chess.Board) render.Options {
	opts := render.Options{
		Header:     fmt.Sprintf("White vs Black | move %d", g.MoveCount),
		Turn:       board.Turn().String() + " to move",
		WhiteScore: board.CalculateScore(chess.White),
		BlackScore: board.CalculateScore(chess.Black),
	}
	if !g.Active() {
		opts.Turn = g.WinnerTeam + " wins"
	}
	if mv := g.LastMove; mv != nil {
		from, ferr := chess.ParsePosition(mv.From)
		to, terr := chess.ParsePosition(mv.To)
		if ferr == nil && terr == nil {
			opts.Highlight = &render.Highlight{From: from, To: to}
		}
	}
	return opts
}
