package tictactoe

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

// Random plays a uniformly chosen free cell.
type Random struct {
	intN func(n int) int
}

func NewRandom() *Random {
	return &Random{intN: rand.IntN}
}

// NewRandomWithSource uses src for every choice. The result is not safe for concurrent use.
func NewRandomWithSource(src rand.Source) *Random {
	return &Random{intN: rand.New(src).IntN}
}

func (that *Random) SelectMove(board entity.Board, _ entity.Mark) (int, bool) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, false
	}

	return availableCells[that.intN(len(availableCells))], true
}

func (that *Random) Name() string {
	return "random"
}
