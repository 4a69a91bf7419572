// Package tictactoe contains the move selection strategies used by the bot.
package tictactoe

import "github.com/rocketscienceinc/tictactoe-server/internal/entity"

// Strategy picks a cell for mark. It reports false only when the board is full.
// Implementations never modify the board they are given.
type Strategy interface {
	SelectMove(board entity.Board, mark entity.Mark) (int, bool)
	Name() string
}

// ForDifficulty returns the strategy used by the bot on the given difficulty.
// Unknown difficulties play the strongest strategy.
func ForDifficulty(difficulty string) Strategy {
	switch difficulty {
	case entity.DifficultyEasy:
		return NewRandom()
	case entity.DifficultyMedium:
		return NewHeuristic(NewRandom())
	default:
		return NewMinimax()
	}
}
