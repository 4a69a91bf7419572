package entity

import (
	"fmt"
	"time"
)

const (
	ModeAI        = "ai"
	ModeTwoPlayer = "two-player"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	DefaultPlayer1 = "Player 1"
	DefaultPlayer2 = "Player 2"

	// HumanMark and BotMark are fixed in AI mode: the human always opens.
	HumanMark = PlayerX
	BotMark   = PlayerO

	MaxHistory = 5
)

const (
	resultHumanWins = "You win!"
	resultDraw      = "It's a draw!"
	fallbackBotName = "AI"
)

var botNames = map[string]string{
	DifficultyEasy:   "Ellie",
	DifficultyMedium: "Blake",
	DifficultyHard:   "Lexi",
}

// HistoryEntry records how a finished game ended.
type HistoryEntry struct {
	Winner Mark   `json:"winner"`
	Result string `json:"result"`
}

// Session is a game together with its players, settings and match history.
type Session struct {
	ID         string         `json:"id"`
	Game       *Game          `json:"game"`
	Mode       string         `json:"mode"`
	Difficulty string         `json:"difficulty"`
	Player1    string         `json:"player1"`
	Player2    string         `json:"player2"`
	History    []HistoryEntry `json:"history"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func NewSession(id, mode, difficulty, player1, player2 string) *Session {
	if difficulty == "" {
		difficulty = DifficultyEasy
	}

	if player1 == "" {
		player1 = DefaultPlayer1
	}

	if player2 == "" {
		player2 = DefaultPlayer2
	}

	return &Session{
		ID:         id,
		Game:       NewGame(),
		Mode:       mode,
		Difficulty: difficulty,
		Player1:    player1,
		Player2:    player2,
		History:    []HistoryEntry{},
	}
}

func (that *Session) IsWithBot() bool {
	return that.Mode == ModeAI
}

// IsBotTurn reports whether the bot has to reply in the current position.
func (that *Session) IsBotTurn() bool {
	return that.IsWithBot() && !that.Game.IsFinished() && that.Game.Turn == BotMark
}

// BotName returns the display name of the bot for the session difficulty.
func (that *Session) BotName() string {
	if name, ok := botNames[that.Difficulty]; ok {
		return name
	}
	return fallbackBotName
}

// ResultText describes a finished game. It is empty while the game is running.
func (that *Session) ResultText() string {
	if !that.Game.IsFinished() {
		return ""
	}

	if that.Game.IsDraw() {
		return resultDraw
	}

	if that.IsWithBot() {
		if that.Game.Winner == HumanMark {
			return resultHumanWins
		}
		return fmt.Sprintf("%s wins!", that.BotName())
	}

	if that.Game.Winner == PlayerX {
		return fmt.Sprintf("%s wins!", that.Player1)
	}
	return fmt.Sprintf("%s wins!", that.Player2)
}

// Result builds the history entry for a finished game.
func (that *Session) Result() HistoryEntry {
	return HistoryEntry{
		Winner: that.Game.Outcome(),
		Result: that.ResultText(),
	}
}

// AppendHistory adds entry and keeps only the last MaxHistory entries.
func AppendHistory(history []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	history = append(history, entry)
	if len(history) > MaxHistory {
		history = append([]HistoryEntry(nil), history[len(history)-MaxHistory:]...)
	}
	return history
}

func (that *Session) Clone() *Session {
	clone := *that
	if that.Game != nil {
		clone.Game = that.Game.Clone()
	}
	clone.History = append([]HistoryEntry{}, that.History...)
	return &clone
}
