package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/usecase"
)

const (
	statusSuccess = "success"

	errTextGameNotFound   = "Game not found"
	errTextInvalidMove    = "Invalid move"
	errTextInvalidRequest = "Invalid request"
	errTextInternal       = "Internal Server Error"
)

type gameManager interface {
	NewGame(ctx context.Context, params usecase.NewGameParams) (*entity.Session, error)
	MakeMove(ctx context.Context, gameID string, position int) (*usecase.MoveResult, error)
	ResetHistory(ctx context.Context, gameID string) error
	GetGame(ctx context.Context, gameID string) (*entity.Session, error)
}

type newGameRequest struct {
	GameID     string `json:"gameId"`
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
	Player1    string `json:"player1"`
	Player2    string `json:"player2"`
}

type moveRequest struct {
	GameID   string `json:"gameId"`
	Position *int   `json:"position"`
}

type gameIDRequest struct {
	GameID string `json:"gameId"`
}

type GameHandler struct {
	logger *slog.Logger
	games  gameManager
}

func NewGameHandler(logger *slog.Logger, games gameManager) *GameHandler {
	return &GameHandler{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errTextInvalidRequest)
		return
	}

	session, err := that.games.NewGame(r.Context(), usecase.NewGameParams{
		ID:         req.GameID,
		Mode:       req.Mode,
		Difficulty: req.Difficulty,
		Player1:    req.Player1,
		Player2:    req.Player2,
	})
	if err != nil {
		that.fail(w, r, "NewGame", err)
		return
	}

	writeJSON(w, http.StatusOK, NewGameResponse{Status: statusSuccess, GameID: session.ID})
}

func (that *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errTextInvalidRequest)
		return
	}

	if req.Position == nil {
		writeError(w, http.StatusBadRequest, errTextInvalidMove)
		return
	}

	result, err := that.games.MakeMove(r.Context(), req.GameID, *req.Position)
	if err != nil {
		that.fail(w, r, "Move", err)
		return
	}

	writeJSON(w, http.StatusOK, NewStateResponse(result.Session, result.Result))
}

func (that *GameHandler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	var req gameIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errTextInvalidRequest)
		return
	}

	if err := that.games.ResetHistory(r.Context(), req.GameID); err != nil {
		that.fail(w, r, "ResetHistory", err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: statusSuccess})
}

func (that *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.GetGame(r.Context(), chi.URLParam(r, "gameId"))
	if err != nil {
		that.fail(w, r, "GetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, NewStateResponse(session, session.ResultText()))
}

func (that *GameHandler) fail(w http.ResponseWriter, r *http.Request, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		writeError(w, http.StatusNotFound, errTextGameNotFound)
	case errors.Is(err, apperror.ErrInvalidMove):
		writeError(w, http.StatusBadRequest, errTextInvalidMove)
	default:
		that.logger.Error("request failed", "method", method, "requestID", middleware.GetReqID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, errTextInternal)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, text string) {
	writeJSON(w, status, ErrorResponse{Error: text})
}
