package chess

var backRank = [boardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartingPieces returns the 32 pieces of a new game.
func StartingPieces() []Piece {
	pieces := make([]Piece, 0, 4*boardSize)
	for file := 1; file <= boardSize; file++ {
		kind := backRank[file-1]
		pieces = append(pieces,
			NewPiece(kind, White, Position{file: file, rank: 1}),
			NewPiece(Pawn, White, Position{file: file, rank: 2}),
			NewPiece(Pawn, Black, Position{file: file, rank: 7}),
			NewPiece(kind, Black, Position{file: file, rank: 8}),
		)
	}
	return pieces
}
