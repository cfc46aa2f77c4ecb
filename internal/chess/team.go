package chess

import (
	"fmt"
	"strings"
)

type Team uint8

const (
	White Team = iota
	Black
)

// Opposite returns the side that moves after t.
func (t Team) Opposite() Team {
	if t == White {
		return Black
	}
	return White
}

func (t Team) String() string {
	if t == Black {
		return "black"
	}
	return "white"
}

// forward is the rank delta of a pawn step for t.
func (t Team) forward() int {
	if t == Black {
		return -1
	}
	return 1
}

// pawnHomeRank is the rank pawns of t start on.
func (t Team) pawnHomeRank() int {
	if t == Black {
		return 7
	}
	return 2
}

func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	default:
		return White, fmt.Errorf("unknown team %q", s)
	}
}

// MarshalText stores teams by name so persisted records stay readable.
func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Team) UnmarshalText(b []byte) error {
	v, err := ParseTeam(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
