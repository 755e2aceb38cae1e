package ws

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/boardlive/internal/domain"
	"github.com/gosuda/boardlive/internal/relay"
)

// Session lifecycle. A session moves strictly forward: Connected while the
// pumps run, Disconnected when the transport drops, Cleaned after the
// registry removed the connection from every room.
const (
	stateConnected int32 = iota
	stateDisconnected
	stateCleaned
)

var (
	errSessionClosed  = errors.New("ws: session closed")
	errSendBufferFull = errors.New("ws: send buffer full")
)

// sendBufferSize bounds the per-connection outbound queue. A peer that falls
// this far behind loses frames rather than stalling room broadcasts.
const sendBufferSize = 64

// session is one websocket connection to the relay. It implements
// relay.Sender so the registry can push frames to it without knowing about
// websockets.
type session struct {
	id       string
	conn     *websocket.Conn
	registry *relay.Registry
	send     chan []byte
	state    atomic.Int32
	cleanup  sync.Once
}

func newSession(conn *websocket.Conn, registry *relay.Registry) *session {
	return &session{
		id:       uuid.NewString(),
		conn:     conn,
		registry: registry,
		send:     make(chan []byte, sendBufferSize),
	}
}

// Send queues one frame for the write pump. Non-blocking: a full buffer or a
// closed session drops the frame, per the fire-and-forget delivery contract.
func (s *session) Send(frame []byte) error {
	if s.state.Load() != stateConnected {
		return errSessionClosed
	}
	select {
	case s.send <- frame:
		return nil
	default:
		return errSendBufferFull
	}
}

// writePump serializes all outbound writes for this connection, preserving
// relay-to-client frame order.
func (s *session) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-s.send:
			if err := s.conn.Write(ctx, websocket.MessageText, frame); err != nil {
				log.Debug().Err(err).Str("conn_id", s.id).Msg("websocket write")
				return
			}
		}
	}
}

// readLoop decodes inbound frames and dispatches them until the transport
// fails or the context is cancelled.
func (s *session) readLoop(ctx context.Context) {
	for {
		_, raw, err := s.conn.Read(ctx)
		if err != nil {
			log.Debug().Err(err).Str("conn_id", s.id).Msg("websocket read ended")
			return
		}
		s.dispatch(raw)
	}
}

// dispatch routes one decoded message to the registry. Malformed frames are
// logged and dropped at the boundary; they never mutate room state.
func (s *session) dispatch(raw []byte) {
	msg, err := relay.Decode(raw)
	if err != nil {
		log.Debug().Err(err).Str("conn_id", s.id).Msg("dropping malformed frame")
		return
	}

	switch m := msg.(type) {
	case relay.JoinBoard:
		s.registry.Join(m.BoardID, domain.Participant{ConnectionID: s.id, User: m.User}, s)
	case relay.LeaveBoard:
		s.registry.Leave(m.BoardID, s.id)
	case relay.UpdateBoard:
		s.registry.RelayChange(m.BoardID, s.id, m.Message, m.UserName)
	case relay.UserInteraction:
		s.registry.RelayInteraction(m.BoardID, s.id, m.Interaction)
	default:
		// Server-to-client message type arriving from a client.
		log.Debug().Str("conn_id", s.id).Msg("ignoring unexpected inbound message type")
	}
}

// close runs the Connected -> Disconnected -> Cleaned transition exactly
// once. A dropped transport counts as an implicit leave for every room the
// connection joined.
func (s *session) close() {
	s.cleanup.Do(func() {
		s.state.Store(stateDisconnected)
		s.registry.DisconnectCleanup(s.id)
		s.state.Store(stateCleaned)
	})
}
