package game

import (
	"fmt"

	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/domain"
)

// Snapshot converts the board's pieces into records for storage.
func Snapshot(b *chess.Board) []domain.PieceRecord {
	pieces := b.AlivePieces()
	out := make([]domain.PieceRecord, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, domain.PieceRecord{
			Position: p.Position().String(),
			Kind:     p.Kind().String(),
			Team:     p.Team().String(),
			Alive:    p.Alive(),
		})
	}
	return out
}

// Restore rebuilds a board from stored records. Dead records are skipped.
func Restore(records []domain.PieceRecord, turn chess.Team) (*chess.Board, error) {
	pieces := make([]chess.Piece, 0, len(records))
	for i, r := range records {
		if !r.Alive {
			continue
		}
		pos, err := chess.ParsePosition(r.Position)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		kind, err := chess.ParseKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		team, err := chess.ParseTeam(r.Team)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		pieces = append(pieces, chess.NewPiece(kind, team, pos))
	}
	return chess.LoadBoard(pieces, turn), nil
}
