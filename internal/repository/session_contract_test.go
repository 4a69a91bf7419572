package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

type repoFactory func(t *testing.T) (context.Context, SessionRepository)

// runSessionRepositoryContract checks behaviour every SessionRepository must share.
func runSessionRepositoryContract(t *testing.T, newRepo repoFactory) {
	t.Run("Create and GetByID", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a new AI session
		session := entity.NewSession("game_1", entity.ModeAI, entity.DifficultyHard, "Ann", "")

		// When: it is created and read back
		require.NoError(t, repo.Create(ctx, session))
		stored, err := repo.GetByID(ctx, "game_1")

		// Then: the stored session matches
		require.NoError(t, err)
		assert.Equal(t, "game_1", stored.ID)
		assert.Equal(t, entity.ModeAI, stored.Mode)
		assert.Equal(t, entity.DifficultyHard, stored.Difficulty)
		assert.Equal(t, "Ann", stored.Player1)
		assert.Equal(t, entity.DefaultPlayer2, stored.Player2)
		assert.Equal(t, entity.NewGame(), stored.Game)
		assert.Empty(t, stored.History)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// When: an unknown id is requested
		_, err := repo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Create overwrites game and history", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a session with a move and some history
		session := entity.NewSession("game_1", entity.ModeTwoPlayer, "", "", "")
		require.NoError(t, repo.Create(ctx, session))
		session.Game.ApplyMove(4)
		require.NoError(t, repo.Save(ctx, session))
		require.NoError(t, repo.AppendHistory(ctx, "game_1", entity.HistoryEntry{Winner: entity.PlayerX, Result: "Player 1 wins!"}))

		// When: the same id is created again
		require.NoError(t, repo.Create(ctx, entity.NewSession("game_1", entity.ModeAI, entity.DifficultyEasy, "", "")))

		// Then: the old game and history are gone
		stored, err := repo.GetByID(ctx, "game_1")
		require.NoError(t, err)
		assert.Equal(t, entity.ModeAI, stored.Mode)
		assert.Equal(t, entity.NewGame(), stored.Game)
		assert.Empty(t, stored.History)
	})

	t.Run("Save persists game state but keeps history", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored session with one history entry
		session := entity.NewSession("game_1", entity.ModeTwoPlayer, "", "", "")
		require.NoError(t, repo.Create(ctx, session))
		entry := entity.HistoryEntry{Winner: entity.Draw, Result: "It's a draw!"}
		require.NoError(t, repo.AppendHistory(ctx, "game_1", entry))

		// When: a move is saved from a copy without history
		session.Game.ApplyMove(0)
		session.History = nil
		require.NoError(t, repo.Save(ctx, session))

		// Then: the move and the history are both there
		stored, err := repo.GetByID(ctx, "game_1")
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, stored.Game.Board[0])
		assert.Equal(t, entity.PlayerO, stored.Game.Turn)
		assert.Equal(t, []entity.HistoryEntry{entry}, stored.History)
	})

	t.Run("Save unknown session", func(t *testing.T) {
		ctx, repo := newRepo(t)

		err := repo.Save(ctx, entity.NewSession("missing", entity.ModeAI, "", "", ""))

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("History is capped", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored session
		require.NoError(t, repo.Create(ctx, entity.NewSession("game_1", entity.ModeAI, "", "", "")))

		// When: six results are appended
		for i := 1; i <= entity.MaxHistory+1; i++ {
			entry := entity.HistoryEntry{Winner: entity.PlayerO, Result: fmt.Sprintf("game %d", i)}
			require.NoError(t, repo.AppendHistory(ctx, "game_1", entry))
		}

		// Then: the oldest one is dropped
		stored, err := repo.GetByID(ctx, "game_1")
		require.NoError(t, err)
		require.Len(t, stored.History, entity.MaxHistory)
		assert.Equal(t, "game 2", stored.History[0].Result)
		assert.Equal(t, "game 6", stored.History[entity.MaxHistory-1].Result)
	})

	t.Run("ClearHistory", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a session with history
		require.NoError(t, repo.Create(ctx, entity.NewSession("game_1", entity.ModeAI, "", "", "")))
		require.NoError(t, repo.AppendHistory(ctx, "game_1", entity.HistoryEntry{Winner: entity.PlayerX, Result: "You win!"}))

		// When: the history is cleared
		require.NoError(t, repo.ClearHistory(ctx, "game_1"))

		// Then: reading it back gives an empty list
		stored, err := repo.GetByID(ctx, "game_1")
		require.NoError(t, err)
		assert.Empty(t, stored.History)
		assert.NotNil(t, stored.History)
	})

	t.Run("History operations on unknown session", func(t *testing.T) {
		ctx, repo := newRepo(t)

		require.ErrorIs(t, repo.AppendHistory(ctx, "missing", entity.HistoryEntry{}), apperror.ErrGameNotFound)
		require.ErrorIs(t, repo.ClearHistory(ctx, "missing"), apperror.ErrGameNotFound)
	})

	t.Run("Returned sessions are copies", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored session
		require.NoError(t, repo.Create(ctx, entity.NewSession("game_1", entity.ModeAI, "", "", "")))

		// When: a loaded session is changed without saving
		stored, err := repo.GetByID(ctx, "game_1")
		require.NoError(t, err)
		stored.Game.ApplyMove(4)

		// Then: the repository is unaffected
		again, err := repo.GetByID(ctx, "game_1")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(), again.Game)
	})
}
