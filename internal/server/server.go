package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/Hsooooo/ai-headsup-holdem/internal/auth"
	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

// Server exposes the game service over HTTP and WebSocket. REST carries the
// operations; the WebSocket pushes events and per-seat views.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger
	service  *GameService
	resolver auth.Resolver
	httpSrv  *http.Server
}

// NewServer creates a server around a game service.
func NewServer(addr string, logger *log.Logger, service *GameService, resolver auth.Resolver) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   logger.WithPrefix("server"),
		service:  service,
		resolver: resolver,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", s.handleCreateGame)
	mux.HandleFunc("GET /games/{id}", s.handleGetState)
	mux.HandleFunc("GET /games/{id}/state", s.handleGetState)
	mux.HandleFunc("POST /games/{id}/join", s.handleJoin)
	mux.HandleFunc("POST /games/{id}/hands/{handId}/commit", s.handleCommit)
	mux.HandleFunc("POST /games/{id}/hands/{handId}/reveal", s.handleReveal)
	mux.HandleFunc("POST /games/{id}/action", s.handleAction)
	mux.HandleFunc("GET /games/{id}/history", s.handleHistory)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// seatFromRequest authenticates the request and returns its seat.
func (s *Server) seatFromRequest(r *http.Request) (game.Seat, error) {
	return s.resolver.Resolve(auth.TokenFromRequest(r))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	sess := s.service.CreateGame()
	s.writeJSON(w, http.StatusCreated, map[string]string{"gameId": sess.ID()})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	seat, err := s.seatFromRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := s.service.GetGame(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Projection(seat))
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	seat, err := s.seatFromRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := s.service.GetGame(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.Join(seat); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Projection(seat))
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Commit string `json:"commit"`
	}
	seat, sess, ok := s.handContext(w, r, &body)
	if !ok {
		return
	}
	if err := sess.Commit(seat, body.Commit); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Projection(seat))
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Seed string `json:"seed"`
	}
	seat, sess, ok := s.handContext(w, r, &body)
	if !ok {
		return
	}
	if err := sess.Reveal(seat, body.Seed); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Projection(seat))
}

// handContext authenticates a hand-scoped request, decodes its body, and
// verifies the hand ID in the path against the current hand.
func (s *Server) handContext(w http.ResponseWriter, r *http.Request, body any) (game.Seat, *game.GameSession, bool) {
	seat, err := s.seatFromRequest(r)
	if err != nil {
		s.writeError(w, err)
		return 0, nil, false
	}
	sess, err := s.service.GetGame(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return 0, nil, false
	}
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		s.writeErrorCode(w, http.StatusBadRequest, "invalid_body", "Failed to parse request body")
		return 0, nil, false
	}

	v := sess.Projection(seat)
	if v.Hand == nil {
		s.writeError(w, game.ErrNoHand)
		return 0, nil, false
	}
	if v.Hand.HandID != r.PathValue("handId") {
		s.writeErrorCode(w, http.StatusBadRequest, "hand_id_mismatch", "Hand ID does not match the current hand")
		return 0, nil, false
	}
	return seat, sess, true
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	seat, err := s.seatFromRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := s.service.GetGame(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var body ActionData
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeErrorCode(w, http.StatusBadRequest, "invalid_body", "Failed to parse request body")
		return
	}
	typ, err := game.ParseActionType(body.Action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.Act(seat, game.Action{Type: typ, Amount: body.Amount}); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Projection(seat))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := s.seatFromRequest(r); err != nil {
		s.writeError(w, err)
		return
	}
	hands, err := s.service.History(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if hands == nil {
		hands = []game.HandRecord{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"hands": hands})
}

// handleWebSocket upgrades GET /ws?game=<id>&token=<token>.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	seat, err := s.seatFromRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := s.service.GetGame(r.URL.Query().Get("game"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	events, cancel := s.service.Bus().Subscribe(sess.ID())
	client := NewConnection(conn, s.logger, sess, seat)
	client.Start(events)
	s.logger.Info("Client connected", "game", sess.ID(), "seat", seat.String())

	go func() {
		<-client.Done()
		cancel()
		s.logger.Info("Client disconnected", "game", sess.ID(), "seat", seat.String())
	}()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeErrorCode(w, httpStatus(err), errorCode(err), err.Error())
}

func (s *Server) writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, ErrorData{Code: code, Message: message})
}

// httpStatus maps engine errors to HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrSeatTaken),
		errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrHandEnded),
		errors.Is(err, game.ErrAlreadyRevealed),
		errors.Is(err, game.ErrNoHand),
		errors.Is(err, game.ErrNotDealt):
		return http.StatusConflict
	case errors.Is(err, game.ErrInternal):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
