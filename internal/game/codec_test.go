package game

import (
	"strings"
	"testing"

	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/domain"
)

func TestSnapshotRestore(t *testing.T) {
	b := chess.NewBoard()
	if _, err := b.MovePiece(chess.MustPosition("e2"), chess.MustPosition("e4")); err != nil {
		t.Fatalf("MovePiece: %v", err)
	}
	records := Snapshot(b)
	if len(records) != 32 {
		t.Fatalf("records = %d, want 32", len(records))
	}

	restored, err := Restore(records, b.Turn())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Turn() != chess.Black {
		t.Fatalf("turn = %s, want black", restored.Turn())
	}
	p, ok := restored.PieceAt(chess.MustPosition("e4"))
	if !ok || !p.Is(chess.Pawn) || p.Team() != chess.White {
		t.Fatalf("e4 should hold the white pawn, got %v", p)
	}
	if _, ok := restored.PieceAt(chess.MustPosition("e2")); ok {
		t.Fatalf("e2 should be empty")
	}
}

func TestRestoreSkipsDeadAndRejectsGarbage(t *testing.T) {
	b, err := Restore([]domain.PieceRecord{
		{Position: "e1", Kind: "king", Team: "white", Alive: true},
		{Position: "e8", Kind: "king", Team: "black", Alive: true},
		{Position: "d8", Kind: "queen", Team: "black", Alive: false},
	}, chess.White)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(b.AlivePieces()) != 2 {
		t.Fatalf("dead record must be skipped")
	}

	_, err = Restore([]domain.PieceRecord{{Position: "z9", Kind: "king", Team: "white", Alive: true}}, chess.White)
	if err == nil || !strings.Contains(err.Error(), "record 0") {
		t.Fatalf("expected record error, got %v", err)
	}
	if _, err := Restore([]domain.PieceRecord{{Position: "a1", Kind: "dragon", Team: "white", Alive: true}}, chess.White); err == nil {
		t.Fatalf("expected kind error")
	}
}

func TestBoardFEN(t *testing.T) {
	b := chess.NewBoard()
	if got := BoardFEN(b, 0); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1" {
		t.Fatalf("start FEN = %q", got)
	}
	if _, err := b.MovePiece(chess.MustPosition("e2"), chess.MustPosition("e4")); err != nil {
		t.Fatalf("MovePiece: %v", err)
	}
	if got := BoardFEN(b, 1); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1" {
		t.Fatalf("FEN after e4 = %q", got)
	}
}
