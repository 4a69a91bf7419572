package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

// SessionRepository stores game sessions by id. Lookups of unknown or expired
// sessions fail with apperror.ErrGameNotFound.
type SessionRepository interface {
	// Create stores session, replacing any session with the same id together with its history.
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	// Save persists the game and settings of an existing session. History is left as stored.
	Save(ctx context.Context, session *entity.Session) error

	AppendHistory(ctx context.Context, id string, entry entity.HistoryEntry) error
	ClearHistory(ctx context.Context, id string) error
}
