package chessbuilder

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/park285/cheese-chess-rules/internal/config"
	"github.com/park285/cheese-chess-rules/internal/game"
)

func TestNewWithoutDatabase(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	deps, err := New(&config.AppConfig{RedisURL: "redis://" + mr.Addr() + "/0", GameTTLSec: 60, BotPrefix: "!"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer deps.Close()

	if deps.Manager == nil || deps.Repo == nil || deps.Viewer == nil || deps.Formatter == nil {
		t.Fatalf("incomplete deps: %+v", deps)
	}
	if deps.Formatter.Prefix() != "!" {
		t.Fatalf("prefix = %q", deps.Formatter.Prefix())
	}
	g, err := deps.Manager.CreateGame(context.Background(), game.NewGameRequest{WhiteID: "a", BlackID: "b"})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := deps.Manager.Resign(context.Background(), g.ID, "a"); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if _, err := deps.Repo.GetResult(context.Background(), g.ID); err != nil {
		t.Fatalf("result not archived: %v", err)
	}
	if err := deps.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewRejectsBadRedisURL(t *testing.T) {
	if _, err := New(&config.AppConfig{RedisURL: "http://nope"}); err == nil {
		t.Fatalf("expected error for non-redis scheme")
	}
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
