package chesspresenter

import (
	"context"
	"errors"
	"testing"

	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/render"
)

type stubRenderer struct {
	opts render.Options
}

func (s *stubRenderer) RenderPNG(_ context.Context, _ *chess.Board, opts render.Options) ([]byte, error) {
	s.opts = opts
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func TestViewerState(t *testing.T) {
	g := newTestGame()
	g.Pieces = game.Snapshot(chess.NewBoard())
	g.LastMove = &game.LastMove{From: "e2", To: "e4", Piece: "pawn"}
	g.MoveCount = 1

	r := &stubRenderer{}
	v := NewViewer(r)
	state, err := v.State(context.Background(), g, true)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if len(state.BoardImage) == 0 {
		t.Fatalf("expected board image")
	}
	if r.opts.Highlight == nil || r.opts.Highlight.To != chess.MustPosition("e4") {
		t.Fatalf("highlight = %+v", r.opts.Highlight)
	}
	if r.opts.Turn != "white to move" {
		t.Fatalf("turn = %q", r.opts.Turn)
	}

	plain, err := v.State(context.Background(), g, false)
	if err != nil || len(plain.BoardImage) != 0 {
		t.Fatalf("state without image: %v, %d bytes", err, len(plain.BoardImage))
	}
	if _, err := v.State(context.Background(), nil, false); !errors.Is(err, game.ErrGameNotFound) {
		t.Fatalf("nil game err = %v", err)
	}
}
