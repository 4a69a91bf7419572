package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-server/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

var ErrBotMove = errors.New("bot selected an illegal move")

type sessionRepo interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error

	AppendHistory(ctx context.Context, id string, entry entity.HistoryEntry) error
	ClearHistory(ctx context.Context, id string) error
}

type recorder interface {
	GameStarted(mode, difficulty string)
	MoveApplied(actor string)
	GameFinished(outcome string)
	BotMoveSelected(strategy string, elapsed time.Duration)
}

// NewGameParams are the settings of a new game. Empty fields get defaults.
type NewGameParams struct {
	ID         string
	Mode       string
	Difficulty string
	Player1    string
	Player2    string
}

// MoveResult is the session after a move (and the bot reply, if any).
type MoveResult struct {
	Session *entity.Session
	// Result is empty until the game is over.
	Result string
}

type Option func(*GameManager)

// WithStrategies replaces the difficulty to strategy mapping.
func WithStrategies(strategies func(difficulty string) tictactoe.Strategy) Option {
	return func(that *GameManager) {
		that.strategies = strategies
	}
}

func WithMetrics(metrics recorder) Option {
	return func(that *GameManager) {
		that.metrics = metrics
	}
}

// GameManager runs games stored in a session repository. Calls for the same
// game id are serialized; different games proceed in parallel.
type GameManager struct {
	logger   *slog.Logger
	sessions sessionRepo
	locks    *pkg.KeyLock

	strategies func(difficulty string) tictactoe.Strategy
	metrics    recorder
}

func NewGameManager(logger *slog.Logger, sessions sessionRepo, opts ...Option) *GameManager {
	manager := &GameManager{
		logger:   logger.With("component", "game-manager"),
		sessions: sessions,
		locks:    pkg.NewKeyLock(),

		strategies: tictactoe.ForDifficulty,
		metrics:    nopRecorder{},
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// NewGame creates a session, replacing any game stored under the same id.
func (that *GameManager) NewGame(ctx context.Context, params NewGameParams) (*entity.Session, error) {
	gameID := params.ID
	if gameID == "" {
		gameID = pkg.GenerateGameID()
	}

	unlock := that.locks.Lock(gameID)
	defer unlock()

	session := entity.NewSession(gameID, params.Mode, params.Difficulty, params.Player1, params.Player2)
	if err := that.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.metrics.GameStarted(session.Mode, session.Difficulty)
	that.logger.Debug("game created", "gameID", gameID, "mode", session.Mode, "difficulty", session.Difficulty)

	return session, nil
}

// MakeMove plays position for the current player and lets the bot answer in AI mode.
// It fails with apperror.ErrGameNotFound or apperror.ErrInvalidMove.
func (that *GameManager) MakeMove(ctx context.Context, gameID string, position int) (*MoveResult, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID)

	unlock := that.locks.Lock(gameID)
	defer unlock()

	session, err := that.sessions.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if !session.Game.ApplyMove(position) {
		return nil, fmt.Errorf("%w: position %d", apperror.ErrInvalidMove, position)
	}
	that.metrics.MoveApplied(metrics.ActorHuman)

	if session.IsBotTurn() {
		if err = that.botTurn(session); err != nil {
			return nil, err
		}
	}

	if err = that.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if session.Game.IsFinished() {
		entry := session.Result()
		if err = that.sessions.AppendHistory(ctx, gameID, entry); err != nil {
			return nil, fmt.Errorf("failed to append history: %w", err)
		}

		session.History = entity.AppendHistory(session.History, entry)
		that.metrics.GameFinished(string(entry.Winner))
		log.Info("game finished", "winner", entry.Winner, "result", entry.Result)
	}

	return &MoveResult{
		Session: session,
		Result:  session.ResultText(),
	}, nil
}

// ResetHistory drops the match history of a game.
func (that *GameManager) ResetHistory(ctx context.Context, gameID string) error {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	if err := that.sessions.ClearHistory(ctx, gameID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// GetGame returns the current state of a game.
func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Session, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	session, err := that.sessions.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return session, nil
}

func (that *GameManager) botTurn(session *entity.Session) error {
	strategy := that.strategies(session.Difficulty)

	start := time.Now()
	cell, ok := strategy.SelectMove(session.Game.Board, entity.BotMark)
	that.metrics.BotMoveSelected(strategy.Name(), time.Since(start))

	if !ok {
		return nil
	}

	if !session.Game.ApplyMove(cell) {
		return fmt.Errorf("%w: %s chose cell %d", ErrBotMove, strategy.Name(), cell)
	}
	that.metrics.MoveApplied(metrics.ActorBot)

	return nil
}

type nopRecorder struct{}

func (nopRecorder) GameStarted(string, string) {}
func (nopRecorder) MoveApplied(string) {}
func (nopRecorder) GameFinished(string) {}
func (nopRecorder) BotMoveSelected(string, time.Duration) {}
