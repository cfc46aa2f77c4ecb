package chess

import "fmt"

// Move describes a committed move.
type Move struct {
	Piece    Piece // the mover, already on To
	From     Position
	To       Position
	Captured *Piece // nil when nothing was taken
}

// Board owns the pieces of one game and the side to move. It is not safe for
// concurrent use; callers serialise moves per game.
type Board struct {
	pieces *PieceSet
	turn   Team
}

// NewBoard returns the standard starting layout with white to move.
func NewBoard() *Board {
	return &Board{pieces: NewPieceSet(StartingPieces()), turn: White}
}

// LoadBoard rebuilds a board from stored pieces and turn. The layout is trusted
// as given.
func LoadBoard(pieces []Piece, turn Team) *Board {
	return &Board{pieces: NewPieceSet(pieces), turn: turn}
}

func (b *Board) Turn() Team { return b.turn }

func (b *Board) PieceAt(pos Position) (Piece, bool) { return b.pieces.PieceAt(pos) }

func (b *Board) AlivePieces() []Piece { return b.pieces.AlivePieces() }

func (b *Board) AlivePiecesOf(team Team) []Piece { return b.pieces.AlivePiecesOf(team) }

// MovePiece validates the move completely before touching any state, then
// applies it and passes the turn.
func (b *Board) MovePiece(src, dst Position) (Move, error) {
	piece, err := b.validateSource(src)
	if err != nil {
		return Move{}, err
	}
	if src == dst {
		return Move{}, fmt.Errorf("%w: %s", ErrSourceEqualsDestination, src)
	}
	if err := piece.ValidateMove(dst); err != nil {
		return Move{}, err
	}
	target, occupied := b.pieces.PieceAt(dst)
	if piece.Is(Pawn) {
		if err := validatePawnTarget(src, dst, occupied); err != nil {
			return Move{}, err
		}
	}
	if !piece.Is(Knight) {
		if err := b.validatePath(src, dst); err != nil {
			return Move{}, err
		}
	}
	if occupied && target.team == piece.team {
		return Move{}, fmt.Errorf("%w: %s", ErrFriendlyFire, dst)
	}

	mv := Move{From: src, To: dst}
	if occupied {
		dead := b.pieces.Remove(target)
		mv.Captured = &dead
	}
	if err := b.pieces.ApplyMove(src, dst); err != nil {
		return Move{}, err
	}
	mv.Piece, _ = b.pieces.PieceAt(dst)
	b.turn = b.turn.Opposite()
	return mv, nil
}

func (b *Board) validateSource(src Position) (Piece, error) {
	piece, ok := b.pieces.PieceAt(src)
	if !ok {
		return Piece{}, fmt.Errorf("%w: %s", ErrNoPieceAtSource, src)
	}
	if piece.team != b.turn {
		return Piece{}, fmt.Errorf("%w: %s to move", ErrWrongTurn, b.turn)
	}
	return piece, nil
}

func validatePawnTarget(src, dst Position, occupied bool) error {
	d := src.DirectionTo(dst)
	if d.IsForwardForPawn() && occupied {
		return fmt.Errorf("%w: %s", ErrPawnBlockedForward, dst)
	}
	if d.IsDiagonalStep() && !occupied {
		return fmt.Errorf("%w: %s", ErrPawnNoCaptureTarget, dst)
	}
	return nil
}

func (b *Board) validatePath(src, dst Position) error {
	for _, pos := range src.PositionsBetween(dst) {
		if _, ok := b.pieces.PieceAt(pos); ok {
			return fmt.Errorf("%w: %s", ErrPathObstructed, pos)
		}
	}
	return nil
}

// CalculateScore is the material score of team's surviving pieces.
func (b *Board) CalculateScore(team Team) float64 {
	return TotalScore(b.pieces.AlivePiecesOf(team))
}

func (b *Board) IsBothKingsAlive() bool { return b.pieces.BothKingsAlive() }

// Winner is the team whose king survives. It is meaningful once
// IsBothKingsAlive reports false.
func (b *Board) Winner() (Team, error) { return b.pieces.TeamWithSurvivingKing() }
