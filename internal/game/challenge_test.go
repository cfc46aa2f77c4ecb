package game

import (
	"context"
	"errors"
	"testing"
)

func TestChallengeBindsAccepterID(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.OpenChallenge(ctx, Challenge{Room: "r1", ChallengerID: "u1", ChallengerName: "alice", TargetName: "@bob"}); err != nil {
		t.Fatalf("OpenChallenge: %v", err)
	}
	if _, err := m.AcceptChallenge(ctx, "r2", "u2", "bob"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("other room err = %v, want ErrChallengeNotFound", err)
	}
	if _, err := m.AcceptChallenge(ctx, "r1", "u1", "bob"); !errors.Is(err, ErrSelfMatch) {
		t.Fatalf("challenger accepting own challenge err = %v", err)
	}

	g, err := m.AcceptChallenge(ctx, "r1", "u2", "bob")
	if err != nil {
		t.Fatalf("AcceptChallenge: %v", err)
	}
	if g.WhiteID != "u1" || g.BlackID != "u2" || g.BlackName != "bob" || g.Room != "r1" {
		t.Fatalf("unexpected game: %+v", g)
	}
	if _, err := m.AcceptChallenge(ctx, "r1", "u3", "bob"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("second accept err = %v, want ErrChallengeNotFound", err)
	}
	if _, ok := g.TeamOf("bob"); ok {
		t.Fatalf("display name must not identify a participant")
	}
}

func TestOpenChallengeRejects(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.OpenChallenge(ctx, Challenge{Room: "r", ChallengerID: "u1", ChallengerName: "alice"}); !errors.Is(err, ErrInvalidPlayers) {
		t.Fatalf("missing target err = %v", err)
	}
	if _, err := m.OpenChallenge(ctx, Challenge{Room: "r", ChallengerID: "u1", ChallengerName: "alice", TargetName: "alice"}); !errors.Is(err, ErrSelfMatch) {
		t.Fatalf("self target err = %v", err)
	}
	newTestGame(t, m)
	if _, err := m.OpenChallenge(ctx, Challenge{Room: "r", ChallengerID: "u1", ChallengerName: "alice", TargetName: "carol"}); !errors.Is(err, ErrAlreadyPlaying) {
		t.Fatalf("busy challenger err = %v", err)
	}
}
