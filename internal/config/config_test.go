package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("GAME_TTL", "")
	t.Setenv("EGRESS_MODE", "")
	t.Setenv("ALLOWED_ROOMS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.GameTTLSec != 86400 || cfg.EgressMode != "http" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.RoomAllowed("anything") {
		t.Fatalf("empty allow list admits every room")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("GAME_TTL", "600")
	t.Setenv("EGRESS_MODE", "AUTO")
	t.Setenv("ALLOWED_ROOMS", " r1, ,r2 ")
	t.Setenv("X_USER_ID", "bot")
	t.Setenv("X_USER_EMAIL", "")
	t.Setenv("X_SESSION_ID", "")
	t.Setenv("EGRESS_DRYRUN", "TRUE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.GameTTLSec != 600 || cfg.EgressMode != "auto" || !cfg.EgressDryRun {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedRooms) != 2 || !cfg.RoomAllowed("r2") || cfg.RoomAllowed("r3") {
		t.Fatalf("unexpected rooms: %v", cfg.AllowedRooms)
	}
	if h := cfg.IdentityHeaders(); h["X-User-Id"] != "bot" || len(h) != 1 {
		t.Fatalf("unexpected headers: %v", h)
	}
}

func TestLoadRequiresRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without REDIS_URL")
	}
}

func TestRequireBot(t *testing.T) {
	cfg := &AppConfig{IrisBaseURL: "http://iris", IrisWSURL: "ws://iris/ws"}
	if err := cfg.RequireBot(); err == nil {
		t.Fatalf("missing BOT_PREFIX must fail")
	}
	cfg.BotPrefix = "!"
	if err := cfg.RequireBot(); err != nil {
		t.Fatalf("RequireBot: %v", err)
	}
}
