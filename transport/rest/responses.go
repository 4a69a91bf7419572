package rest

import "github.com/rocketscienceinc/tictactoe-server/internal/entity"

type StatusResponse struct {
	Status string `json:"status"`
}

type NewGameResponse struct {
	Status string `json:"status"`
	GameID string `json:"gameId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StateResponse is the board as the UI renders it. Winner and WinningLine are null
// while nobody has won; Result is only present once the game is over.
type StateResponse struct {
	Status        string                `json:"status"`
	Board         entity.Board          `json:"board"`
	CurrentPlayer entity.Mark           `json:"currentPlayer"`
	GameOver      bool                  `json:"gameOver"`
	Winner        *entity.Mark          `json:"winner"`
	WinningLine   []int                 `json:"winningLine"`
	Result        string                `json:"result,omitempty"`
	History       []entity.HistoryEntry `json:"history"`
}

func NewStateResponse(session *entity.Session, result string) StateResponse {
	game := session.Game

	response := StateResponse{
		Status:        statusSuccess,
		Board:         game.Board,
		CurrentPlayer: game.Turn,
		GameOver:      game.Over,
		WinningLine:   game.WinningLine,
		Result:        result,
		History:       session.History,
	}

	if game.Winner != entity.EmptyCell {
		winner := game.Winner
		response.Winner = &winner
	}

	if response.History == nil {
		response.History = []entity.HistoryEntry{}
	}

	return response
}
