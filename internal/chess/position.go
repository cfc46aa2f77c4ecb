package chess

import (
	"fmt"
	"strings"
)

const boardSize = 8

// Position is a square on the board. The zero value is not a valid square;
// build positions with NewPosition or ParsePosition.
type Position struct {
	file int // 1..8 for a..h
	rank int // 1..8
}

func NewPosition(file, rank int) (Position, error) {
	if file < 1 || file > boardSize || rank < 1 || rank > boardSize {
		return Position{}, fmt.Errorf("%w: file=%d rank=%d", ErrInvalidPosition, file, rank)
	}
	return Position{file: file, rank: rank}, nil
}

// ParsePosition reads algebraic notation such as "e4". Case and surrounding
// space are ignored.
func ParsePosition(s string) (Position, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	if v[0] < 'a' || v[1] < '0' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	p, err := NewPosition(int(v[0]-'a')+1, int(v[1]-'0'))
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return p, nil
}

// MustPosition is ParsePosition for literals; it panics on bad input.
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Position) File() int { return p.file }
func (p Position) Rank() int { return p.rank }

// Valid reports whether p lies on the board.
func (p Position) Valid() bool {
	return p.file >= 1 && p.file <= boardSize && p.rank >= 1 && p.rank <= boardSize
}

func (p Position) String() string {
	if !p.Valid() {
		return "??"
	}
	return string([]byte{byte('a' + p.file - 1), byte('0' + p.rank)})
}

func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: file=%d rank=%d", ErrInvalidPosition, p.file, p.rank)
	}
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// DirectionTo classifies the vector from p to other.
func (p Position) DirectionTo(other Position) Direction {
	return Direction{df: other.file - p.file, dr: other.rank - p.rank}
}

// IsNonDiagonal reports whether other is not on a diagonal through p.
func (p Position) IsNonDiagonal(other Position) bool {
	return p.DirectionTo(other).Kind() != DirectionDiagonal
}

// IsNonLinear reports whether other shares neither rank nor file with p.
func (p Position) IsNonLinear(other Position) bool {
	k := p.DirectionTo(other).Kind()
	return k != DirectionHorizontal && k != DirectionVertical
}

// PositionsBetween returns the squares strictly between p and other in travel
// order. It is empty when the two are adjacent or not aligned.
func (p Position) PositionsBetween(other Position) []Position {
	d := p.DirectionTo(other)
	switch d.Kind() {
	case DirectionHorizontal, DirectionVertical, DirectionDiagonal:
	default:
		return nil
	}
	sf, sr := sign(d.df), sign(d.dr)
	var out []Position
	for f, r := p.file+sf, p.rank+sr; f != other.file || r != other.rank; f, r = f+sf, r+sr {
		out = append(out, Position{file: f, rank: r})
	}
	return out
}
