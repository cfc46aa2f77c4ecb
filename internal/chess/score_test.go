package chess

import "testing"

func TestTotalScore(t *testing.T) {
	cases := []struct {
		name   string
		pieces []Piece
		want   float64
	}{
		{
			name: "doubled pawns and rook",
			pieces: []Piece{
				NewPiece(Pawn, White, MustPosition("a2")),
				NewPiece(Pawn, White, MustPosition("a3")),
				NewPiece(Rook, White, MustPosition("h1")),
			},
			want: 6.0,
		},
		{
			name: "tripled pawns each penalised",
			pieces: []Piece{
				NewPiece(Pawn, Black, MustPosition("c7")),
				NewPiece(Pawn, Black, MustPosition("c6")),
				NewPiece(Pawn, Black, MustPosition("c5")),
			},
			want: 1.5,
		},
		{
			name: "pawns on separate files",
			pieces: []Piece{
				NewPiece(Pawn, White, MustPosition("a2")),
				NewPiece(Pawn, White, MustPosition("b3")),
				NewPiece(Knight, White, MustPosition("c3")),
				NewPiece(Bishop, White, MustPosition("f1")),
			},
			want: 7.0,
		},
		{
			name: "opposing pawns do not double",
			pieces: []Piece{
				NewPiece(Pawn, White, MustPosition("e4")),
				NewPiece(Pawn, Black, MustPosition("e5")),
			},
			want: 2.0,
		},
		{
			name: "king and queen",
			pieces: []Piece{
				NewPiece(King, White, MustPosition("e1")),
				NewPiece(Queen, White, MustPosition("d1")),
			},
			want: 9.0,
		},
		{name: "empty", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalScore(tc.pieces); got != tc.want {
				t.Fatalf("TotalScore = %v, want %v", got, tc.want)
			}
		})
	}
}
