package chess

import (
	"fmt"
	"strings"
)

// Kind is the closed set of piece kinds. Movement rules switch on it.
type Kind uint8

const (
	Pawn Kind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindScores = map[Kind]float64{
	Pawn:   1,
	Knight: 2.5,
	Bishop: 2.5,
	Rook:   5,
	Queen:  9,
	King:   0,
}

// glyphs are indexed by Team: white outline, black filled.
var kindGlyphs = map[Kind][2]rune{
	Pawn:   {'♙', '♟'},
	Knight: {'♘', '♞'},
	Bishop: {'♗', '♝'},
	Rook:   {'♖', '♜'},
	Queen:  {'♕', '♛'},
	King:   {'♔', '♚'},
}

var kindLetters = map[Kind]byte{
	Pawn:   'P',
	Knight: 'N',
	Bishop: 'B',
	Rook:   'R',
	Queen:  'Q',
	King:   'K',
}

// Score is the material value of the kind.
func (k Kind) Score() float64 { return kindScores[k] }

// Glyph returns the display character for the kind on team t.
func (k Kind) Glyph(t Team) rune {
	g, ok := kindGlyphs[k]
	if !ok {
		return '?'
	}
	return g[t]
}

// Letter returns the FEN letter: upper case for white, lower case for black.
func (k Kind) Letter(t Team) string {
	l, ok := kindLetters[k]
	if !ok {
		return "?"
	}
	if t == Black {
		return strings.ToLower(string(l))
	}
	return string(l)
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pawn", "p":
		return Pawn, nil
	case "knight", "n":
		return Knight, nil
	case "bishop", "b":
		return Bishop, nil
	case "rook", "r":
		return Rook, nil
	case "queen", "q":
		return Queen, nil
	case "king", "k":
		return King, nil
	default:
		return 0, fmt.Errorf("unknown piece kind %q", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindLetters[k]; !ok {
		return nil, fmt.Errorf("unknown piece kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
