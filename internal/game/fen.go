package game

import (
	"fmt"

	nchess "github.com/corentings/chess/v2"
	"github.com/park285/cheese-chess-rules/internal/chess"
)

// BoardFEN exports the placement and side to move as FEN. Castling and en
// passant fields are always "-" since neither rule exists here.
func BoardFEN(b *chess.Board, moveCount int) string {
	squares := make(map[nchess.Square]nchess.Piece, 32)
	for _, p := range b.AlivePieces() {
		squares[toSquare(p.Position())] = toPiece(p)
	}
	turn := "w"
	if b.Turn() == chess.Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s - - 0 %d", nchess.NewBoard(squares).String(), turn, moveCount/2+1)
}

func toSquare(pos chess.Position) nchess.Square {
	return nchess.NewSquare(nchess.File(pos.File()-1), nchess.Rank(pos.Rank()-1))
}

func toPiece(p chess.Piece) nchess.Piece {
	white := p.Team() == chess.White
	switch p.Kind() {
	case chess.Pawn:
		if white {
			return nchess.WhitePawn
		}
		return nchess.BlackPawn
	case chess.Knight:
		if white {
			return nchess.WhiteKnight
		}
		return nchess.BlackKnight
	case chess.Bishop:
		if white {
			return nchess.WhiteBishop
		}
		return nchess.BlackBishop
	case chess.Rook:
		if white {
			return nchess.WhiteRook
		}
		return nchess.BlackRook
	case chess.Queen:
		if white {
			return nchess.WhiteQueen
		}
		return nchess.BlackQueen
	case chess.King:
		if white {
			return nchess.WhiteKing
		}
		return nchess.BlackKing
	default:
		return nchess.NoPiece
	}
}
