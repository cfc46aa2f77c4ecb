package chess

// doubledPawnPenalty is subtracted once per pawn sharing its file with another
// pawn of the same team.
const doubledPawnPenalty = 0.5

// TotalScore sums the material value of pieces, penalising doubled pawns.
func TotalScore(pieces []Piece) float64 {
	type column struct {
		team Team
		file int
	}
	pawnsPerColumn := make(map[column]int)
	total := 0.0
	for _, p := range pieces {
		total += p.Score()
		if p.kind == Pawn {
			pawnsPerColumn[column{p.team, p.position.file}]++
		}
	}
	for _, n := range pawnsPerColumn {
		if n > 1 {
			total -= doubledPawnPenalty * float64(n)
		}
	}
	return total
}
