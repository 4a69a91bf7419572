package tictactoe

import "github.com/rocketscienceinc/tictactoe-server/internal/entity"

// Heuristic wins when it can, blocks an immediate loss otherwise and falls back
// to another strategy when neither applies.
type Heuristic struct {
	fallback Strategy
}

func NewHeuristic(fallback Strategy) *Heuristic {
	return &Heuristic{fallback: fallback}
}

func (that *Heuristic) SelectMove(board entity.Board, mark entity.Mark) (int, bool) {
	if cell, ok := winningCell(board, mark); ok {
		return cell, true
	}

	if cell, ok := winningCell(board, mark.Opponent()); ok {
		return cell, true
	}

	return that.fallback.SelectMove(board, mark)
}

func (that *Heuristic) Name() string {
	return "heuristic"
}

// winningCell returns the lowest free cell that completes a triple for mark.
func winningCell(board entity.Board, mark entity.Mark) (int, bool) {
	for _, cell := range board.EmptyCells() {
		scratch := board
		scratch[cell] = mark
		if scratch.Evaluate() == mark {
			return cell, true
		}
	}

	return 0, false
}
