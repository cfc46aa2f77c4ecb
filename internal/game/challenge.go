package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/obslog"
)

const challengeTTL = 10 * time.Minute

var ErrChallengeNotFound = errors.New("no pending challenge")

// Challenge is an invitation addressed to a display name. Chat mentions carry
// names only, so the opponent's user id is bound when they accept.
type Challenge struct {
	Room           string    `json:"room"`
	ChallengerID   string    `json:"challenger_id"`
	ChallengerName string    `json:"challenger_name"`
	TargetName     string    `json:"target_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// OpenChallenge records c for TargetName in its room, replacing an older
// invitation to the same name.
func (m *Manager) OpenChallenge(ctx context.Context, c Challenge) (*Challenge, error) {
	c.Room = strings.TrimSpace(c.Room)
	c.ChallengerID = strings.TrimSpace(c.ChallengerID)
	c.ChallengerName = strings.TrimSpace(c.ChallengerName)
	c.TargetName = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.TargetName), "@"))
	if c.ChallengerID == "" || c.TargetName == "" {
		return nil, ErrInvalidPlayers
	}
	if c.TargetName == c.ChallengerName {
		return nil, ErrSelfMatch
	}
	if g, err := m.ActiveGameByPlayer(ctx, c.ChallengerID); err == nil && g != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPlaying, c.ChallengerID)
	} else if err != nil && !errors.Is(err, ErrGameNotFound) {
		return nil, err
	}

	c.CreatedAt = m.now()
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	if err := m.rdb.Set(ctx, challengeKey(c.Room, c.TargetName), raw, challengeTTL).Err(); err != nil {
		return nil, err
	}
	obslog.L().Info("challenge_open",
		zap.String("room", c.Room),
		zap.String("challenger_id", c.ChallengerID),
		zap.String("target_name", c.TargetName),
	)
	return &c, nil
}

// AcceptChallenge claims the invitation addressed to accepterName and starts
// the game with the challenger as white. The invitation is consumed once.
func (m *Manager) AcceptChallenge(ctx context.Context, room, accepterID, accepterName string) (*Game, error) {
	accepterID, accepterName = strings.TrimSpace(accepterID), strings.TrimSpace(accepterName)
	if accepterID == "" || accepterName == "" {
		return nil, ErrInvalidPlayers
	}
	key := challengeKey(room, accepterName)
	c, err := readChallenge(m.rdb.Get(ctx, key))
	if err != nil {
		return nil, err
	}
	if c.ChallengerID == accepterID {
		return nil, ErrSelfMatch
	}
	if c, err = readChallenge(m.rdb.GetDel(ctx, key)); err != nil {
		return nil, err
	}
	return m.CreateGame(ctx, NewGameRequest{
		Room:      c.Room,
		WhiteID:   c.ChallengerID,
		WhiteName: c.ChallengerName,
		BlackID:   accepterID,
		BlackName: accepterName,
	})
}

func readChallenge(cmd *redis.StringCmd) (*Challenge, error) {
	raw, err := cmd.Bytes()
	if err == redis.Nil {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	var c Challenge
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode challenge: %w", err)
	}
	return &c, nil
}

func challengeKey(room, name string) string {
	return "chess:challenge:" + strings.TrimSpace(room) + ":" + strings.TrimSpace(name)
}
