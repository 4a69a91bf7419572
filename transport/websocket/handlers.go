package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-server/transport/rest"
)

const (
	errTextGameNotFound   = "Game not found"
	errTextInvalidMove    = "Invalid move"
	errTextInvalidRequest = "Invalid request"
	errTextUnknownAction  = "Unknown action"
	errTextInternal       = "Internal Server Error"
)

func (that *Server) handleNewGame(ctx context.Context, payload *Payload) (any, error) {
	session, err := that.games.NewGame(ctx, usecase.NewGameParams{
		ID:         payload.GameID,
		Mode:       payload.Mode,
		Difficulty: payload.Difficulty,
		Player1:    payload.Player1,
		Player2:    payload.Player2,
	})
	if err != nil {
		return nil, err
	}

	return rest.NewGameResponse{Status: "success", GameID: session.ID}, nil
}

func (that *Server) handleMove(ctx context.Context, payload *Payload) (any, error) {
	if payload.Position == nil {
		return nil, apperror.ErrInvalidMove
	}

	result, err := that.games.MakeMove(ctx, payload.GameID, *payload.Position)
	if err != nil {
		return nil, err
	}

	return rest.NewStateResponse(result.Session, result.Result), nil
}

func (that *Server) handleState(ctx context.Context, payload *Payload) (any, error) {
	session, err := that.games.GetGame(ctx, payload.GameID)
	if err != nil {
		return nil, err
	}

	return rest.NewStateResponse(session, session.ResultText()), nil
}

func (that *Server) handleResetHistory(ctx context.Context, payload *Payload) (any, error) {
	if err := that.games.ResetHistory(ctx, payload.GameID); err != nil {
		return nil, err
	}

	return rest.StatusResponse{Status: "success"}, nil
}

func (that *Server) errorPayload(action string, err error) ErrorPayload {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return ErrorPayload{Error: errTextGameNotFound}
	case errors.Is(err, apperror.ErrInvalidMove):
		return ErrorPayload{Error: errTextInvalidMove}
	default:
		that.logger.Error("failed to handle message", "action", action, "error", err)
		return ErrorPayload{Error: errTextInternal}
	}
}
