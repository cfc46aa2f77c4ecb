package chesspresenter

import (
	"errors"
	"strings"

	"github.com/park285/cheese-chess-rules/internal/chess"
	"github.com/park285/cheese-chess-rules/internal/game"
)

var errorKeys = []struct {
	err error
	key string
}{
	{chess.ErrInvalidPosition, "move.rejected.invalid_position"},
	{chess.ErrNoPieceAtSource, "move.rejected.no_piece_at_source"},
	{chess.ErrWrongTurn, "move.rejected.wrong_turn"},
	{chess.ErrSourceEqualsDestination, "move.rejected.source_equals_destination"},
	{chess.ErrIllegalMove, "move.rejected.illegal_move"},
	{chess.ErrPawnBlockedForward, "move.rejected.pawn_blocked_forward"},
	{chess.ErrPawnNoCaptureTarget, "move.rejected.pawn_no_capture_target"},
	{chess.ErrPathObstructed, "move.rejected.path_obstructed"},
	{chess.ErrFriendlyFire, "move.rejected.friendly_fire"},
	{chess.ErrNoKingFound, "game.no_king"},
	{game.ErrGameNotFound, "game.not_found"},
	{game.ErrGameFinished, "game.finished"},
	{game.ErrNotParticipant, "game.not_participant"},
	{game.ErrNotYourTurn, "game.not_your_turn"},
	{game.ErrConcurrentMove, "game.concurrent"},
	{game.ErrSelfMatch, "game.self_match"},
	{game.ErrAlreadyPlaying, "game.already_playing"},
	{game.ErrInvalidPlayers, "game.invalid_players"},
	{game.ErrChallengeNotFound, "game.no_challenge"},
}

// MessageKey returns the catalog key describing err, or "" when err is not a
// known rejection.
func MessageKey(err error) string {
	if err == nil {
		return ""
	}
	for _, e := range errorKeys {
		if errors.Is(err, e.err) {
			return e.key
		}
	}
	return ""
}

// ErrorCode is the last segment of MessageKey, e.g. "path_obstructed".
func ErrorCode(err error) string {
	key := MessageKey(err)
	if key == "" {
		return "internal"
	}
	return key[strings.LastIndexByte(key, '.')+1:]
}
