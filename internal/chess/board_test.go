package chess

import (
	"errors"
	"reflect"
	"testing"
)

func mustMove(t *testing.T, b *Board, src, dst string) Move {
	t.Helper()
	mv, err := b.MovePiece(MustPosition(src), MustPosition(dst))
	if err != nil {
		t.Fatalf("MovePiece(%s, %s): %v", src, dst, err)
	}
	return mv
}

func expectRejected(t *testing.T, b *Board, src, dst string, want error) {
	t.Helper()
	before := b.AlivePieces()
	turn := b.Turn()
	_, err := b.MovePiece(MustPosition(src), MustPosition(dst))
	if !errors.Is(err, want) {
		t.Fatalf("MovePiece(%s, %s) err = %v, want %v", src, dst, err, want)
	}
	if b.Turn() != turn {
		t.Fatalf("turn changed after rejected move: %s → %s", turn, b.Turn())
	}
	if !reflect.DeepEqual(before, b.AlivePieces()) {
		t.Fatalf("pieces changed after rejected move %s→%s", src, dst)
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	if got := len(b.AlivePieces()); got != 32 {
		t.Fatalf("alive pieces = %d, want 32", got)
	}
	if b.Turn() != White {
		t.Fatalf("first turn = %s, want white", b.Turn())
	}
	if !b.IsBothKingsAlive() {
		t.Fatalf("both kings must be alive at start")
	}
	for _, team := range []Team{White, Black} {
		if got := b.CalculateScore(team); got != 37 {
			t.Fatalf("%s starting score = %v, want 37", team, got)
		}
	}
	king, ok := b.PieceAt(MustPosition("e8"))
	if !ok || !king.Is(King) || king.Team() != Black {
		t.Fatalf("e8 should hold the black king, got %v", king)
	}
}

func TestMovePieceScenario(t *testing.T) {
	b := NewBoard()

	mv := mustMove(t, b, "e2", "e4")
	if mv.Captured != nil {
		t.Fatalf("e2e4 must not capture")
	}
	if mv.Piece.Position() != MustPosition("e4") || !mv.Piece.Is(Pawn) {
		t.Fatalf("unexpected mover %v", mv.Piece)
	}
	if b.Turn() != Black {
		t.Fatalf("turn = %s, want black", b.Turn())
	}

	expectRejected(t, b, "e2", "e4", ErrNoPieceAtSource)

	mustMove(t, b, "e7", "e5")
	if b.Turn() != White {
		t.Fatalf("turn = %s, want white", b.Turn())
	}

	mustMove(t, b, "f1", "b5")
	if _, ok := b.PieceAt(MustPosition("f1")); ok {
		t.Fatalf("f1 should be empty after the bishop left")
	}
	if !b.IsBothKingsAlive() {
		t.Fatalf("no king was captured")
	}
}

func TestMovePieceTurnAlternates(t *testing.T) {
	b := NewBoard()
	moves := [][2]string{{"b1", "c3"}, {"g8", "f6"}, {"c3", "b5"}, {"f6", "g4"}, {"g1", "f3"}}
	want := White
	for _, m := range moves {
		if b.Turn() != want {
			t.Fatalf("before %s%s turn = %s, want %s", m[0], m[1], b.Turn(), want)
		}
		mustMove(t, b, m[0], m[1])
		want = want.Opposite()
	}
}

func TestMovePieceRejections(t *testing.T) {
	t.Run("wrong turn", func(t *testing.T) {
		expectRejected(t, NewBoard(), "e7", "e5", ErrWrongTurn)
	})
	t.Run("empty source", func(t *testing.T) {
		expectRejected(t, NewBoard(), "e4", "e5", ErrNoPieceAtSource)
	})
	t.Run("illegal geometry", func(t *testing.T) {
		expectRejected(t, NewBoard(), "b1", "b3", ErrIllegalMove)
	})
	t.Run("rook through pawn", func(t *testing.T) {
		expectRejected(t, NewBoard(), "a1", "a3", ErrPathObstructed)
	})
	t.Run("bishop through pawn", func(t *testing.T) {
		expectRejected(t, NewBoard(), "c1", "e3", ErrPathObstructed)
	})
	t.Run("queen through pawn", func(t *testing.T) {
		expectRejected(t, NewBoard(), "d1", "d3", ErrPathObstructed)
	})
	t.Run("friendly fire", func(t *testing.T) {
		expectRejected(t, NewBoard(), "a1", "a2", ErrFriendlyFire)
	})
	t.Run("knight onto own pawn", func(t *testing.T) {
		expectRejected(t, NewBoard(), "g1", "e2", ErrFriendlyFire)
	})
	t.Run("pawn diagonal without target", func(t *testing.T) {
		expectRejected(t, NewBoard(), "e2", "d3", ErrPawnNoCaptureTarget)
	})
}

func TestMovePieceSourceEqualsDestination(t *testing.T) {
	b := NewBoard()
	for _, p := range b.AlivePiecesOf(White) {
		src := p.Position().String()
		expectRejected(t, b, src, src, ErrSourceEqualsDestination)
	}
}

func TestPawnOccupancyRules(t *testing.T) {
	layout := func() *Board {
		return LoadBoard([]Piece{
			NewPiece(King, White, MustPosition("e1")),
			NewPiece(King, Black, MustPosition("e8")),
			NewPiece(Pawn, White, MustPosition("e2")),
			NewPiece(Pawn, Black, MustPosition("e3")),
			NewPiece(Pawn, White, MustPosition("c4")),
			NewPiece(Pawn, Black, MustPosition("d5")),
			NewPiece(Pawn, White, MustPosition("g2")),
			NewPiece(Knight, White, MustPosition("h3")),
		}, White)
	}

	expectRejected(t, layout(), "e2", "e3", ErrPawnBlockedForward)
	expectRejected(t, layout(), "e2", "e4", ErrPathObstructed)
	expectRejected(t, layout(), "g2", "h3", ErrFriendlyFire)

	b := layout()
	mv := mustMove(t, b, "c4", "d5")
	if mv.Captured == nil || !mv.Captured.Is(Pawn) || mv.Captured.Team() != Black {
		t.Fatalf("expected black pawn capture, got %v", mv.Captured)
	}
	if mv.Captured.Alive() {
		t.Fatalf("captured piece must be marked dead")
	}
	if got := len(b.AlivePiecesOf(Black)); got != 2 {
		t.Fatalf("black pieces = %d, want 2", got)
	}
}

func TestKnightJumpsOverPieces(t *testing.T) {
	b := NewBoard()
	mustMove(t, b, "b1", "c3")
	mustMove(t, b, "b8", "a6")
}

func TestKingCaptureEndsGame(t *testing.T) {
	b := LoadBoard([]Piece{
		NewPiece(King, White, MustPosition("e1")),
		NewPiece(Rook, White, MustPosition("a1")),
		NewPiece(King, Black, MustPosition("a8")),
		NewPiece(Pawn, Black, MustPosition("h7")),
	}, White)

	mv := mustMove(t, b, "a1", "a8")
	if mv.Captured == nil || !mv.Captured.Is(King) {
		t.Fatalf("expected king capture, got %v", mv.Captured)
	}
	if b.IsBothKingsAlive() {
		t.Fatalf("black king was captured")
	}
	winner, err := b.Winner()
	if err != nil {
		t.Fatalf("Winner: %v", err)
	}
	if winner != White {
		t.Fatalf("winner = %s, want white", winner)
	}
	if got := b.CalculateScore(Black); got != 1 {
		t.Fatalf("black score = %v, want 1", got)
	}
}

func TestBlackKingCaptureEndsGame(t *testing.T) {
	b := LoadBoard([]Piece{
		NewPiece(King, White, MustPosition("d1")),
		NewPiece(Pawn, White, MustPosition("a2")),
		NewPiece(Queen, Black, MustPosition("d8")),
		NewPiece(King, Black, MustPosition("e8")),
	}, Black)

	mv := mustMove(t, b, "d8", "d1")
	if mv.Captured == nil || !mv.Captured.Is(King) || mv.Captured.Team() != White {
		t.Fatalf("expected white king capture, got %v", mv.Captured)
	}
	if b.IsBothKingsAlive() {
		t.Fatalf("white king was captured")
	}
	winner, err := b.Winner()
	if err != nil {
		t.Fatalf("Winner: %v", err)
	}
	if winner != Black {
		t.Fatalf("winner = %s, want black", winner)
	}
	if got := b.CalculateScore(White); got != 1 {
		t.Fatalf("white score = %v, want 1", got)
	}
	if got := b.CalculateScore(Black); got != 9 {
		t.Fatalf("black score = %v, want 9", got)
	}
}

func TestLoadBoard(t *testing.T) {
	dead := NewPiece(Queen, Black, MustPosition("d8")).killed()
	b := LoadBoard([]Piece{
		NewPiece(King, White, MustPosition("e1")),
		NewPiece(King, Black, MustPosition("e8")),
		dead,
	}, Black)
	if b.Turn() != Black {
		t.Fatalf("turn = %s, want black", b.Turn())
	}
	if _, ok := b.PieceAt(MustPosition("d8")); ok {
		t.Fatalf("dead pieces must not be placed")
	}
	if got := len(b.AlivePieces()); got != 2 {
		t.Fatalf("alive = %d, want 2", got)
	}
}

func TestWinnerWithoutKings(t *testing.T) {
	b := LoadBoard(nil, White)
	if b.IsBothKingsAlive() {
		t.Fatalf("empty board has no kings")
	}
	if _, err := b.Winner(); !errors.Is(err, ErrNoKingFound) {
		t.Fatalf("Winner err = %v, want ErrNoKingFound", err)
	}
}

func TestIsRuleViolation(t *testing.T) {
	_, err := NewBoard().MovePiece(MustPosition("a1"), MustPosition("a2"))
	if !IsRuleViolation(err) {
		t.Fatalf("friendly fire should be a rule violation: %v", err)
	}
	if IsRuleViolation(ErrInvalidPosition) || IsRuleViolation(nil) {
		t.Fatalf("only move rejections are rule violations")
	}
}
