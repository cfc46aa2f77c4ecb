package chess

import "fmt"

// Piece is a value: moving or capturing produces a new value in the PieceSet,
// never a shared mutation.
type Piece struct {
	kind     Kind
	team     Team
	position Position
	alive    bool
}

func NewPiece(kind Kind, team Team, pos Position) Piece {
	return Piece{kind: kind, team: team, position: pos, alive: true}
}

func (p Piece) Kind() Kind         { return p.kind }
func (p Piece) Team() Team         { return p.team }
func (p Piece) Position() Position { return p.position }
func (p Piece) Alive() bool        { return p.alive }
func (p Piece) Score() float64     { return p.kind.Score() }
func (p Piece) Glyph() rune        { return p.kind.Glyph(p.team) }

// Is reports whether p has the given kind.
func (p Piece) Is(k Kind) bool { return p.kind == k }

func (p Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.team, p.kind, p.position)
}

func (p Piece) movedTo(dst Position) Piece {
	p.position = dst
	return p
}

func (p Piece) killed() Piece {
	p.alive = false
	return p
}

// ValidateMove checks that dst is reachable by the piece's movement shape from
// its current square. Occupancy and obstruction are Board concerns.
func (p Piece) ValidateMove(dst Position) error {
	if !dst.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, dst)
	}
	d := p.position.DirectionTo(dst)
	var ok bool
	switch p.kind {
	case Pawn:
		ok = p.pawnCanReach(d)
	case Knight:
		ok = d.Kind() == DirectionKnight
	case Bishop:
		ok = d.Kind() == DirectionDiagonal
	case Rook:
		k := d.Kind()
		ok = k == DirectionHorizontal || k == DirectionVertical
	case Queen:
		ok = !(p.position.IsNonDiagonal(dst) && p.position.IsNonLinear(dst))
	case King:
		ok = d.Distance() == 1
	}
	if !ok {
		return fmt.Errorf("%w: %s cannot go %s→%s", ErrIllegalMove, p.kind, p.position, dst)
	}
	return nil
}

func (p Piece) pawnCanReach(d Direction) bool {
	fwd := p.team.forward()
	if d.IsDiagonalStep() {
		return d.dr == fwd
	}
	if !d.IsForwardForPawn() {
		return false
	}
	if d.dr == fwd {
		return true
	}
	return d.dr == 2*fwd && p.position.rank == p.team.pawnHomeRank()
}
