package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/usecase"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

type gameManager interface {
	NewGame(ctx context.Context, params usecase.NewGameParams) (*entity.Session, error)
	MakeMove(ctx context.Context, gameID string, position int) (*usecase.MoveResult, error)
	ResetHistory(ctx context.Context, gameID string) error
	GetGame(ctx context.Context, gameID string) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, payload *Payload) (any, error)

type Server struct {
	logger *slog.Logger
	games  gameManager

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameMove] = server.handleMove
	server.handlers[actionGameState] = server.handleState
	server.handlers[actionHistoryReset] = server.handleResetHistory

	return server
}

// Start - starts WebSocket server. Open connections are closed when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP upgrades the connection and serves messages until the peer leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := websocket.Accept(writer, req, nil)
	if err != nil {
		log.Error("failed to accept connection", "error", err)
		return
	}
	defer conn.CloseNow()

	log.Info("WebSocket connection established")

	err = that.handleMessages(req.Context(), conn)
	switch {
	case websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway,
		errors.Is(err, context.Canceled):
		log.Info("WebSocket connection closed")
	default:
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.send(ctx, conn, "", ErrorPayload{Error: errTextInvalidRequest}); err != nil {
				return err
			}
			continue
		}

		response := that.dispatch(ctx, &message)
		if err = that.send(ctx, conn, message.Action, response); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, message *Message) any {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return ErrorPayload{Error: errTextUnknownAction}
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return ErrorPayload{Error: errTextInvalidRequest}
		}
	}

	response, err := handler(ctx, &payload)
	if err != nil {
		return that.errorPayload(message.Action, err)
	}

	return response
}

func (that *Server) send(ctx context.Context, conn *websocket.Conn, action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = wsjson.Write(ctx, conn, Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
