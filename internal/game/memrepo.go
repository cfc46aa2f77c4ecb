package game

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/park285/cheese-chess-rules/internal/domain"
)

// memrepo keeps results in memory when no database is configured.
type memrepo struct {
	mu      sync.RWMutex
	results map[string]*domain.GameResult
}

func NewMemoryRepository() Repository {
	return &memrepo{results: make(map[string]*domain.GameResult)}
}

func (m *memrepo) SaveResult(ctx context.Context, res *domain.GameResult) error {
	if res == nil || strings.TrimSpace(res.GameID) == "" {
		return ErrResultNotFound
	}
	cp := *res
	m.mu.Lock()
	m.results[res.GameID] = &cp
	m.mu.Unlock()
	return nil
}

func (m *memrepo) GetResult(ctx context.Context, gameID string) (*domain.GameResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.results[gameID]
	if !ok {
		return nil, ErrResultNotFound
	}
	cp := *res
	return &cp, nil
}

func (m *memrepo) RecentResults(ctx context.Context, playerID string, limit int) ([]*domain.GameResult, error) {
	if limit <= 0 {
		limit = 10
	}
	m.mu.RLock()
	var out []*domain.GameResult
	for _, res := range m.results {
		if res.WhiteID == playerID || res.BlackID == playerID {
			cp := *res
			out = append(out, &cp)
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].EndedAt.After(out[j].EndedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
