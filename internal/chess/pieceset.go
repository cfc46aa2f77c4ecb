package chess

import (
	"fmt"
	"sort"
)

// PieceSet maps squares to the pieces standing on them. Only alive pieces are
// ever stored.
type PieceSet struct {
	pieces map[Position]Piece
}

// NewPieceSet indexes the alive pieces by position. Dead pieces are dropped;
// a later piece on the same square replaces an earlier one.
func NewPieceSet(pieces []Piece) *PieceSet {
	s := &PieceSet{pieces: make(map[Position]Piece, len(pieces))}
	for _, p := range pieces {
		if !p.alive || !p.position.Valid() {
			continue
		}
		s.pieces[p.position] = p
	}
	return s
}

func (s *PieceSet) PieceAt(pos Position) (Piece, bool) {
	p, ok := s.pieces[pos]
	return p, ok
}

func (s *PieceSet) Len() int { return len(s.pieces) }

// AlivePieces lists every occupant ordered by rank then file.
func (s *PieceSet) AlivePieces() []Piece {
	out := make([]Piece, 0, len(s.pieces))
	for _, p := range s.pieces {
		out = append(out, p)
	}
	sortPieces(out)
	return out
}

func (s *PieceSet) AlivePiecesOf(team Team) []Piece {
	var out []Piece
	for _, p := range s.pieces {
		if p.team == team {
			out = append(out, p)
		}
	}
	sortPieces(out)
	return out
}

// BothKingsAlive is true iff exactly two kings remain.
func (s *PieceSet) BothKingsAlive() bool {
	return len(s.kings()) == 2
}

// TeamWithSurvivingKing returns the team of the first surviving king in board
// order.
func (s *PieceSet) TeamWithSurvivingKing() (Team, error) {
	kings := s.kings()
	if len(kings) == 0 {
		return White, ErrNoKingFound
	}
	return kings[0].team, nil
}

// ApplyMove relocates the occupant of src to dst. The caller clears dst first
// when it holds a captured piece.
func (s *PieceSet) ApplyMove(src, dst Position) error {
	p, ok := s.pieces[src]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPieceAtSource, src)
	}
	delete(s.pieces, src)
	s.pieces[dst] = p.movedTo(dst)
	return nil
}

// Remove deletes the piece from its square and returns it marked dead.
func (s *PieceSet) Remove(p Piece) Piece {
	if cur, ok := s.pieces[p.position]; ok && cur.kind == p.kind && cur.team == p.team {
		delete(s.pieces, p.position)
	}
	return p.killed()
}

func (s *PieceSet) kings() []Piece {
	var out []Piece
	for _, p := range s.pieces {
		if p.kind == King {
			out = append(out, p)
		}
	}
	sortPieces(out)
	return out
}

func sortPieces(ps []Piece) {
	sort.Slice(ps, func(i, j int) bool {
		a, b := ps[i].position, ps[j].position
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return a.file < b.file
	})
}
