package tictactoe

import "github.com/rocketscienceinc/tictactoe-server/internal/entity"

const (
	scoreWin  = 1
	scoreDraw = 0
	scoreLoss = -1

	// one beyond the reachable scores
	scoreFloor   = scoreLoss - 1
	scoreCeiling = scoreWin + 1
)

// Minimax searches the full game tree and never loses.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

// SelectMove returns the best cell for mark, preferring the lowest index among equals.
func (that *Minimax) SelectMove(board entity.Board, mark entity.Mark) (int, bool) {
	scratch := board

	bestCell, bestScore := -1, scoreFloor
	for cell := range scratch {
		if scratch[cell] != entity.EmptyCell {
			continue
		}

		scratch[cell] = mark
		score := search(&scratch, mark, false)
		scratch[cell] = entity.EmptyCell

		if score > bestScore {
			bestCell, bestScore = cell, score
		}
	}

	if bestCell < 0 {
		return 0, false
	}

	return bestCell, true
}

func (that *Minimax) Name() string {
	return "minimax"
}

// search scores board from the point of view of me. Every placement is
// reverted before the function returns.
func search(board *entity.Board, me entity.Mark, maximizing bool) int {
	switch result := board.Evaluate(); result {
	case entity.EmptyCell:
	case entity.Draw:
		return scoreDraw
	case me:
		return scoreWin
	default:
		return scoreLoss
	}

	mark, best := me.Opponent(), scoreCeiling
	if maximizing {
		mark, best = me, scoreFloor
	}

	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = mark
		score := search(board, me, !maximizing)
		board[cell] = entity.EmptyCell

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
