package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	HTTPAddr string

	RedisURL    string
	DatabaseURL string

	GameTTLSec  int
	MessagesDir string

	// Chat bot transport
	IrisBaseURL  string
	IrisWSURL    string
	BotPrefix    string
	EgressMode   string
	EgressDryRun bool
	AllowedRooms []string

	XUserID    string
	XUserEmail string
	XSessionID string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:   ":8080",
		GameTTLSec: 86400,
		EgressMode: "http",
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("GAME_TTL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GameTTLSec = n
		}
	}

	cfg.IrisBaseURL = strings.TrimSpace(os.Getenv("IRIS_BASE_URL"))
	cfg.IrisWSURL = strings.TrimSpace(os.Getenv("IRIS_WS_URL"))
	cfg.BotPrefix = strings.TrimSpace(os.Getenv("BOT_PREFIX"))
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("EGRESS_MODE"))); v == "http" || v == "ws" || v == "auto" {
		cfg.EgressMode = v
	}
	cfg.EgressDryRun = strings.EqualFold(strings.TrimSpace(os.Getenv("EGRESS_DRYRUN")), "true")
	cfg.AllowedRooms = splitList(os.Getenv("ALLOWED_ROOMS"))

	cfg.XUserID = strings.TrimSpace(os.Getenv("X_USER_ID"))
	cfg.XUserEmail = strings.TrimSpace(os.Getenv("X_USER_EMAIL"))
	cfg.XSessionID = strings.TrimSpace(os.Getenv("X_SESSION_ID"))

	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	return cfg, nil
}

// RequireBot checks the settings only the chat bot needs.
func (c *AppConfig) RequireBot() error {
	if c.IrisBaseURL == "" {
		return errors.New("IRIS_BASE_URL is required")
	}
	if c.IrisWSURL == "" {
		return errors.New("IRIS_WS_URL is required")
	}
	if c.BotPrefix == "" {
		return errors.New("BOT_PREFIX is required")
	}
	return nil
}

// IdentityHeaders are sent with every Iris request and WS handshake.
func (c *AppConfig) IdentityHeaders() map[string]string {
	h := map[string]string{}
	if c.XUserID != "" {
		h["X-User-Id"] = c.XUserID
	}
	if c.XUserEmail != "" {
		h["X-User-Email"] = c.XUserEmail
	}
	if c.XSessionID != "" {
		h["X-Session-Id"] = c.XSessionID
	}
	return h
}

func (c *AppConfig) RoomAllowed(room string) bool {
	if len(c.AllowedRooms) == 0 {
		return true
	}
	room = strings.TrimSpace(room)
	for _, r := range c.AllowedRooms {
		if r == room {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
