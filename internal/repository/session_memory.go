package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

type memorySessions struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session

	// zero means sessions never expire
	ttl time.Duration
	now func() time.Time
}

// MemorySessionRepository keeps sessions in process memory. Sessions idle for
// longer than the ttl are treated as missing and removed by Run.
type MemorySessionRepository interface {
	SessionRepository
	EvictExpired() int
	Run(ctx context.Context, logger *slog.Logger, interval time.Duration)
}

func NewMemorySessionRepository(ttl time.Duration) MemorySessionRepository {
	return newMemorySessions(ttl, time.Now)
}

func newMemorySessions(ttl time.Duration, now func() time.Time) *memorySessions {
	return &memorySessions{
		sessions: make(map[string]*entity.Session),
		ttl:      ttl,
		now:      now,
	}
}

func (that *memorySessions) Create(_ context.Context, session *entity.Session) error {
	stored := session.Clone()
	stored.UpdatedAt = that.now()

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = stored

	return nil
}

func (that *memorySessions) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	stored, err := that.lookup(id)
	if err != nil {
		return nil, err
	}

	return stored.Clone(), nil
}

func (that *memorySessions) Save(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	existing, err := that.lookup(session.ID)
	if err != nil {
		return err
	}

	stored := session.Clone()
	stored.History = existing.History
	stored.UpdatedAt = that.now()
	that.sessions[session.ID] = stored

	return nil
}

func (that *memorySessions) AppendHistory(_ context.Context, id string, entry entity.HistoryEntry) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	existing, err := that.lookup(id)
	if err != nil {
		return err
	}

	existing.History = entity.AppendHistory(existing.History, entry)
	existing.UpdatedAt = that.now()

	return nil
}

func (that *memorySessions) ClearHistory(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	existing, err := that.lookup(id)
	if err != nil {
		return err
	}

	existing.History = []entity.HistoryEntry{}
	existing.UpdatedAt = that.now()

	return nil
}

// EvictExpired removes idle sessions and returns how many were dropped.
func (that *memorySessions) EvictExpired() int {
	if that.ttl <= 0 {
		return 0
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	evicted := 0
	for id, session := range that.sessions {
		if that.expired(session) {
			delete(that.sessions, id)
			evicted++
		}
	}

	return evicted
}

// Run evicts idle sessions every interval until ctx is done.
func (that *memorySessions) Run(ctx context.Context, logger *slog.Logger, interval time.Duration) {
	log := logger.With("component", "session-janitor")

	if that.ttl <= 0 || interval <= 0 {
		log.Info("session eviction disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := that.EvictExpired(); evicted > 0 {
				log.Info("evicted idle sessions", "count", evicted)
			}
		}
	}
}

// lookup must be called with the mutex held.
func (that *memorySessions) lookup(id string) (*entity.Session, error) {
	session, ok := that.sessions[id]
	if !ok || that.expired(session) {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	return session, nil
}

func (that *memorySessions) expired(session *entity.Session) bool {
	return that.ttl > 0 && that.now().Sub(session.UpdatedAt) > that.ttl
}
