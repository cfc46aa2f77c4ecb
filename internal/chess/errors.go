package chess

import "errors"

// Rule rejections. MovePiece wraps them with the offending squares; match with errors.Is.
var (
	ErrInvalidPosition         = errors.New("invalid position")
	ErrNoPieceAtSource         = errors.New("no piece at source")
	ErrWrongTurn               = errors.New("wrong turn")
	ErrSourceEqualsDestination = errors.New("source equals destination")
	ErrIllegalMove             = errors.New("illegal move")
	ErrPawnBlockedForward      = errors.New("pawn blocked forward")
	ErrPawnNoCaptureTarget     = errors.New("pawn has no capture target")
	ErrPathObstructed          = errors.New("path obstructed")
	ErrFriendlyFire            = errors.New("destination holds own piece")
	ErrNoKingFound             = errors.New("no king found")
)

// IsRuleViolation reports whether err is a move rejection raised by Board.MovePiece.
func IsRuleViolation(err error) bool {
	switch {
	case errors.Is(err, ErrNoPieceAtSource),
		errors.Is(err, ErrWrongTurn),
		errors.Is(err, ErrSourceEqualsDestination),
		errors.Is(err, ErrIllegalMove),
		errors.Is(err, ErrPawnBlockedForward),
		errors.Is(err, ErrPawnNoCaptureTarget),
		errors.Is(err, ErrPathObstructed),
		errors.Is(err, ErrFriendlyFire):
		return true
	default:
		return false
	}
}
