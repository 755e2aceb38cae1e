// Package client is the board-side consumer of the relay and the REST API:
// it keeps one live websocket per mounted board view, mirrors presence and
// interaction indicators into BoardState, and debounces outgoing change
// notifications. It is the process a browser front end would embed; the
// reorder engine plugs into it for persistence and peer signalling.
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/boardlive/internal/domain"
	"github.com/gosuda/boardlive/internal/relay"
)

const defaultNotifyDebounce = 300 * time.Millisecond

// errContextClosed aborts an attach that raced with Close.
var errContextClosed = errors.New("client: context closed")

// Config wires a presence context to one board room.
type Config struct {
	// URL is the relay websocket endpoint, e.g. wss://host/ws.
	URL string
	// Token is the access token; passed as a query parameter because
	// browser websockets cannot set headers.
	Token   string
	BoardID uuid.UUID
	User    domain.OnlineUser

	// OnRefresh fires for every refresh-board frame. The callback should
	// refetch the board and feed it back through Engine.Load.
	OnRefresh func(message, userName string)

	// NotifyDebounce overrides the change-notification debounce window.
	// Zero means the 300ms default.
	NotifyDebounce time.Duration
}

// Context maintains the live connection of one board view. It reconnects
// with exponential backoff and re-joins the room after every reconnect,
// since the relay holds presence in memory only.
type Context struct {
	cfg   Config
	state *BoardState

	mu        sync.Mutex
	conn      *websocket.Conn
	connCtx   context.Context
	debounce  *time.Timer
	pending   string
	closed    bool
}

func New(cfg Config) *Context {
	if cfg.NotifyDebounce <= 0 {
		cfg.NotifyDebounce = defaultNotifyDebounce
	}
	return &Context{
		cfg:   cfg,
		state: NewBoardState(),
	}
}

// State exposes the presence and interaction view state for rendering.
func (c *Context) State() *BoardState {
	return c.state
}

// Connected reports whether a relay connection is currently established.
func (c *Context) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Context) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Run dials the relay and processes frames until ctx is cancelled or Close
// is called. Dropped connections are re-dialed with exponential backoff;
// every successful (re)connect sends a fresh join so the relay rebuilds
// presence.
func (c *Context) Run(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.isClosed() {
			return nil
		}

		conn, _, err := websocket.Dial(ctx, c.dialURL(), nil)
		if err != nil {
			wait := bo.NextBackOff()
			log.Warn().Err(err).Dur("retry_in", wait).Msg("relay dial failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}
		bo.Reset()

		if err := c.attach(ctx, conn); err != nil {
			_ = conn.Close(websocket.StatusInternalError, "join failed")
			continue
		}

		c.readLoop(ctx, conn)

		c.detach()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if c.isClosed() {
			return nil
		}
		log.Info().Str("board_id", c.cfg.BoardID.String()).Msg("relay connection lost, reconnecting")
	}
}

// Close leaves the room and shuts the connection down. A closed context
// never redials; Run returns instead of reconnecting.
func (c *Context) Close() {
	c.mu.Lock()
	conn := c.conn
	connCtx := c.connCtx
	c.conn = nil
	c.closed = true
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.mu.Unlock()

	if conn == nil {
		return
	}
	if frame, err := relay.EncodeLeaveBoard(c.cfg.BoardID); err == nil {
		_ = conn.Write(connCtx, websocket.MessageText, frame)
	}
	_ = conn.Close(websocket.StatusNormalClosure, "leaving board")
}

// EmitInteraction sends an ephemeral UI hint to room peers. Fire-and-forget:
// disconnected contexts drop the emit with a debug log.
func (c *Context) EmitInteraction(kind domain.InteractionKind, targetID uuid.UUID) {
	it := domain.Interaction{
		Kind:      kind,
		TargetID:  targetID,
		UserID:    c.cfg.User.ID,
		UserName:  c.cfg.User.Name,
		UserImage: c.cfg.User.Image,
	}
	frame, err := relay.EncodeUserInteraction(c.cfg.BoardID, it)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode interaction")
		return
	}
	if !c.write(frame) {
		log.Debug().Str("kind", string(kind)).Msg("interaction dropped, not connected")
	}
}

// EmitChangeNotification tells peers a mutation occurred so they refetch.
// Debounced: rapid successive mutations collapse into one update-board frame
// carrying the latest message, giving the persistence write a head start
// before peers refetch.
func (c *Context) EmitChangeNotification(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.pending = message
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.cfg.NotifyDebounce, c.flushNotification)
}

func (c *Context) flushNotification() {
	c.mu.Lock()
	message := c.pending
	c.mu.Unlock()

	frame, err := relay.EncodeUpdateBoard(c.cfg.BoardID, message, c.cfg.User.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode change notification")
		return
	}
	if !c.write(frame) {
		log.Debug().Msg("change notification dropped, not connected")
	}
}

func (c *Context) dialURL() string {
	if c.cfg.Token == "" {
		return c.cfg.URL
	}
	return c.cfg.URL + "?token=" + c.cfg.Token
}

// attach stores the live connection and joins the board room.
func (c *Context) attach(ctx context.Context, conn *websocket.Conn) error {
	frame, err := relay.EncodeJoinBoard(c.cfg.BoardID, c.cfg.User)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errContextClosed
	}
	c.conn = conn
	c.connCtx = ctx
	c.mu.Unlock()

	if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
		c.detach()
		return err
	}
	return nil
}

func (c *Context) detach() {
	c.mu.Lock()
	c.conn = nil
	c.mu.Unlock()
	// Indicators from the dead session would never receive their end events.
	c.state.Reset()
}

// write sends one frame on the current connection. Returns false when there
// is none.
func (c *Context) write(frame []byte) bool {
	c.mu.Lock()
	conn := c.conn
	connCtx := c.connCtx
	c.mu.Unlock()

	if conn == nil {
		return false
	}
	if err := conn.Write(connCtx, websocket.MessageText, frame); err != nil {
		log.Debug().Err(err).Msg("relay write failed")
		return false
	}
	return true
}

func (c *Context) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			return
		}

		msg, err := relay.Decode(raw)
		if err != nil {
			log.Debug().Err(err).Msg("dropping malformed relay frame")
			continue
		}

		switch m := msg.(type) {
		case []domain.OnlineUser:
			c.state.SetOnlineUsers(m)
		case relay.RefreshBoard:
			if c.cfg.OnRefresh != nil {
				c.cfg.OnRefresh(m.Message, m.UserName)
			}
		case relay.UserInteraction:
			c.state.Apply(m.Interaction)
		default:
			// join/leave/update frames are client-to-server only.
		}
	}
}
