package websocket

import "encoding/json"

const (
	actionGameNew      = "game:new"
	actionGameMove     = "game:move"
	actionGameState    = "game:state"
	actionHistoryReset = "history:reset"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries the request fields of every action; each handler reads the ones it needs.
type Payload struct {
	GameID     string `json:"gameId"`
	Mode       string `json:"mode,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Player1    string `json:"player1,omitempty"`
	Player2    string `json:"player2,omitempty"`
	Position   *int   `json:"position,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
