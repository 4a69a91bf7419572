package entity

// Game is the state of a single match. It is changed only through ApplyMove.
type Game struct {
	Board       Board `json:"board"`
	Turn        Mark  `json:"current_player"`
	Over        bool  `json:"game_over"`
	Winner      Mark  `json:"winner,omitempty"`
	WinningLine []int `json:"winning_line,omitempty"`
}

func NewGame() *Game {
	return &Game{
		Turn: PlayerX,
	}
}

// ApplyMove places the current mark at cell. It returns false and leaves the
// game untouched when the cell is out of range, occupied, or the game is over.
func (that *Game) ApplyMove(cell int) bool {
	if that.Over {
		return false
	}

	if cell < 0 || cell >= BoardSize || that.Board[cell] != EmptyCell {
		return false
	}

	that.Board[cell] = that.Turn

	switch result := that.Board.Evaluate(); result {
	// one player wins
	case PlayerX, PlayerO:
		line, _ := that.Board.WinningLine()
		that.Winner = result
		that.WinningLine = line[:]
		that.Over = true
	// tie
	case Draw:
		that.Over = true
	// game continue
	default:
		that.Turn = that.Turn.Opponent()
	}

	return true
}

func (that *Game) IsFinished() bool {
	return that.Over
}

func (that *Game) IsDraw() bool {
	return that.Over && that.Winner == EmptyCell
}

// Outcome is the winner mark or Draw for a finished game, EmptyCell otherwise.
func (that *Game) Outcome() Mark {
	switch {
	case !that.Over:
		return EmptyCell
	case that.Winner == EmptyCell:
		return Draw
	default:
		return that.Winner
	}
}

func (that *Game) Clone() *Game {
	clone := *that
	if that.WinningLine != nil {
		clone.WinningLine = append([]int(nil), that.WinningLine...)
	}
	return &clone
}
