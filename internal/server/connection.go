package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/Hsooooo/ai-headsup-holdem/internal/auth"
	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection bound to one seat of one
// game. It pushes engine events plus a per-seat view after each one, and
// accepts commit, reveal, and action commands.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	session   *game.GameSession
	seat      game.Seat
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a connection wrapper for an authenticated seat.
func NewConnection(conn *websocket.Conn, logger *log.Logger, session *game.GameSession, seat game.Seat) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		session: session,
		seat:    seat,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection. The events channel delivers the
// game's bus subscription; it is drained until closed or the connection
// ends.
func (c *Connection) Start(events <-chan game.Event) {
	go c.writePump()
	go c.readPump()
	go c.eventPump(events)
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Done is closed when the connection has ended.
func (c *Connection) Done() <-chan struct{} { return c.ctx.Done() }

// SendMessage sends a message to the client.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// eventPump forwards engine events to the client, each followed by a fresh
// view for this seat.
func (c *Connection) eventPump(events <-chan game.Event) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if msg, err := NewMessage(MessageTypeEvent, EventDataFromGame(ev)); err == nil {
				_ = c.SendMessage(msg)
			}
			c.sendView()
		}
	}
}

func (c *Connection) sendView() {
	msg, err := NewMessage(MessageTypeGameView, c.session.Projection(c.seat))
	if err != nil {
		c.logger.Error("Failed to encode game view", "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "seat", c.seat.String())

	switch msg.Type {
	case MessageTypeCommit:
		var data CommitData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse commit data")
			return
		}
		c.handleCommit(data)

	case MessageTypeReveal:
		var data RevealData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse reveal data")
			return
		}
		c.handleReveal(data)

	case MessageTypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse action data")
			return
		}
		c.handleAction(data)

	case MessageTypeState:
		c.sendView()

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

func (c *Connection) handleCommit(data CommitData) {
	if !c.checkHandID(data.HandID) {
		return
	}
	if err := c.session.Commit(c.seat, data.Commit); err != nil {
		c.sendError(errorCode(err), err.Error())
	}
}

func (c *Connection) handleReveal(data RevealData) {
	if !c.checkHandID(data.HandID) {
		return
	}
	if err := c.session.Reveal(c.seat, data.Seed); err != nil {
		c.sendError(errorCode(err), err.Error())
	}
}

func (c *Connection) handleAction(data ActionData) {
	typ, err := game.ParseActionType(data.Action)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	if err := c.session.Act(c.seat, game.Action{Type: typ, Amount: data.Amount}); err != nil {
		c.sendError(errorCode(err), err.Error())
	}
}

// checkHandID rejects fairness commands addressed to a stale hand.
func (c *Connection) checkHandID(handID string) bool {
	v := c.session.Projection(c.seat)
	if v.Hand == nil {
		c.sendError(errorCode(game.ErrNoHand), game.ErrNoHand.Error())
		return false
	}
	if v.Hand.HandID != handID {
		c.sendError("hand_id_mismatch", "Hand ID does not match the current hand")
		return false
	}
	return true
}

// errorCode maps engine errors to wire error codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, auth.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, auth.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, game.ErrNoHand):
		return "no_hand"
	case errors.Is(err, game.ErrNotDealt):
		return "not_dealt"
	case errors.Is(err, game.ErrHandEnded):
		return "hand_ended"
	case errors.Is(err, game.ErrAlreadyRevealed):
		return "already_revealed"
	case errors.Is(err, game.ErrMissingCommit):
		return "missing_commit"
	case errors.Is(err, game.ErrCommitMismatch):
		return "commit_mismatch"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrCannotCheck):
		return "cannot_check"
	case errors.Is(err, game.ErrNothingToCall):
		return "nothing_to_call"
	case errors.Is(err, game.ErrUseRaise):
		return "use_raise"
	case errors.Is(err, game.ErrUseBet):
		return "use_bet"
	case errors.Is(err, game.ErrBadBet):
		return "bad_bet"
	case errors.Is(err, game.ErrBadRaise):
		return "bad_raise"
	case errors.Is(err, game.ErrRaiseTooSmall):
		return "raise_too_small"
	case errors.Is(err, game.ErrUnknownAction):
		return "unknown_action"
	case errors.Is(err, game.ErrSeatTaken):
		return "seat_taken"
	case errors.Is(err, game.ErrGameFinished):
		return "game_finished"
	default:
		return "internal"
	}
}
