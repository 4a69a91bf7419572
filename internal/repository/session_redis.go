package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

// dbSession keeps the session document under {prefix}session:{id} and the
// match history as a capped list under {prefix}session:{id}:history.
type dbSession struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSessionRepository(client *redis.Client, prefix string, ttl time.Duration) SessionRepository {
	return &dbSession{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (that *dbSession) key(id string) string {
	return that.prefix + "session:" + id
}

func (that *dbSession) historyKey(id string) string {
	return that.key(id) + ":history"
}

func (that *dbSession) Create(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := that.marshal(session)
	if err != nil {
		return err
	}

	history := session.History
	if len(history) > entity.MaxHistory {
		history = history[len(history)-entity.MaxHistory:]
	}

	entries := make([]any, 0, len(history))
	for _, entry := range history {
		entryJSON, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("could not marshal history entry: %w", err)
		}
		entries = append(entries, entryJSON)
	}

	historyKey := that.historyKey(session.ID)
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, that.key(session.ID), sessionJSON, that.ttl)
		pipe.Del(ctx, historyKey)
		if len(entries) > 0 {
			pipe.RPush(ctx, historyKey, entries...)
			that.expire(ctx, pipe, historyKey)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	pipe := that.client.Pipeline()
	sessionCmd := pipe.Get(ctx, that.key(id))
	historyCmd := pipe.LRange(ctx, that.historyKey(id), 0, -1)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	response, err := sessionCmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var existingSession entity.Session
	if err = json.Unmarshal([]byte(response), &existingSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	existingSession.History = make([]entity.HistoryEntry, 0, len(historyCmd.Val()))
	for _, raw := range historyCmd.Val() {
		var entry entity.HistoryEntry
		if err = json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		existingSession.History = append(existingSession.History, entry)
	}

	return &existingSession, nil
}

func (that *dbSession) Save(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := that.marshal(session)
	if err != nil {
		return err
	}

	var updated *redis.BoolCmd
	historyKey := that.historyKey(session.ID)
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		updated = pipe.SetXX(ctx, that.key(session.ID), sessionJSON, that.ttl)
		that.expire(ctx, pipe, historyKey)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if !updated.Val() {
		return fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, session.ID)
	}

	return nil
}

func (that *dbSession) AppendHistory(ctx context.Context, id string, entry entity.HistoryEntry) error {
	if err := that.ensureExists(ctx, id); err != nil {
		return err
	}

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not marshal history entry: %w", err)
	}

	historyKey := that.historyKey(id)
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, historyKey, entryJSON)
		pipe.LTrim(ctx, historyKey, -entity.MaxHistory, -1)
		that.expire(ctx, pipe, historyKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

func (that *dbSession) ClearHistory(ctx context.Context, id string) error {
	if err := that.ensureExists(ctx, id); err != nil {
		return err
	}

	if err := that.client.Del(ctx, that.historyKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

func (that *dbSession) ensureExists(ctx context.Context, id string) error {
	count, err := that.client.Exists(ctx, that.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}

	if count == 0 {
		return fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	return nil
}

// expire is a no-op without a ttl; EXPIRE 0 would delete the key.
func (that *dbSession) expire(ctx context.Context, pipe redis.Pipeliner, key string) {
	if that.ttl > 0 {
		pipe.Expire(ctx, key, that.ttl)
	}
}

func (that *dbSession) marshal(session *entity.Session) ([]byte, error) {
	document := *session
	document.History = nil
	document.UpdatedAt = time.Now().UTC()

	sessionJSON, err := json.Marshal(&document)
	if err != nil {
		return nil, fmt.Errorf("could not marshal session: %w", err)
	}

	return sessionJSON, nil
}
