package pkg

import "github.com/google/uuid"

// GenerateGameID returns an id for games created without one.
func GenerateGameID() string {
	return "game_" + uuid.NewString()
}
