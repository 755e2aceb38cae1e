package relay

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gosuda/boardlive/internal/domain"
)

// Wire message types. Client-to-server: join-board, leave-board,
// update-board, user-interaction. Server-to-client: users-updated,
// refresh-board, user-interaction.
const (
	TypeJoinBoard       = "join-board"
	TypeLeaveBoard      = "leave-board"
	TypeUsersUpdated    = "users-updated"
	TypeUpdateBoard     = "update-board"
	TypeRefreshBoard    = "refresh-board"
	TypeUserInteraction = "user-interaction"
)

// ErrMalformed is returned when a frame fails envelope decoding, carries an
// unknown type, or is missing required payload fields. Malformed frames are
// rejected at the boundary and never reach the registry.
var ErrMalformed = errors.New("relay: malformed message")

// Envelope is the tagged union carried on the wire. Type discriminates the
// payload held in Data.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type JoinBoard struct {
	BoardID uuid.UUID         `json:"boardId"`
	User    domain.OnlineUser `json:"user"`
}

type LeaveBoard struct {
	BoardID uuid.UUID `json:"boardId"`
}

type UpdateBoard struct {
	BoardID  uuid.UUID `json:"boardId"`
	Message  string    `json:"message"`
	UserName string    `json:"userName"`
}

// RefreshBoard tells peers that board data changed and they should refetch.
// It carries no diff; the persistence service stays the source of truth.
type RefreshBoard struct {
	Message  string `json:"message"`
	UserName string `json:"userName"`
}

type UserInteraction struct {
	BoardID uuid.UUID `json:"boardId"`
	domain.Interaction
}

// Decode parses a raw frame into one of the typed payloads. Every branch
// validates required fields so handlers can trust payload shape.
func Decode(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("relay.Decode: envelope: %w", ErrMalformed)
	}

	switch env.Type {
	case TypeJoinBoard:
		var p JoinBoard
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("relay.Decode: %s: %w", env.Type, ErrMalformed)
		}
		if p.BoardID == uuid.Nil || p.User.ID == uuid.Nil || p.User.Name == "" {
			return nil, fmt.Errorf("relay.Decode: %s: missing fields: %w", env.Type, ErrMalformed)
		}
		return p, nil

	case TypeLeaveBoard:
		var p LeaveBoard
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("relay.Decode: %s: %w", env.Type, ErrMalformed)
		}
		if p.BoardID == uuid.Nil {
			return nil, fmt.Errorf("relay.Decode: %s: missing board id: %w", env.Type, ErrMalformed)
		}
		return p, nil

	case TypeUpdateBoard:
		var p UpdateBoard
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("relay.Decode: %s: %w", env.Type, ErrMalformed)
		}
		if p.BoardID == uuid.Nil || p.UserName == "" {
			return nil, fmt.Errorf("relay.Decode: %s: missing fields: %w", env.Type, ErrMalformed)
		}
		return p, nil

	case TypeRefreshBoard:
		var p RefreshBoard
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("relay.Decode: %s: %w", env.Type, ErrMalformed)
		}
		return p, nil

	case TypeUsersUpdated:
		var p []domain.OnlineUser
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("relay.Decode: %s: %w", env.Type, ErrMalformed)
		}
		return p, nil

	case TypeUserInteraction:
		var p UserInteraction
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("relay.Decode: %s: %w", env.Type, ErrMalformed)
		}
		if p.BoardID == uuid.Nil || p.TargetID == uuid.Nil || p.UserID == uuid.Nil || p.UserName == "" {
			return nil, fmt.Errorf("relay.Decode: %s: missing fields: %w", env.Type, ErrMalformed)
		}
		if !p.Kind.Valid() {
			return nil, fmt.Errorf("relay.Decode: %s: unknown kind %q: %w", env.Type, p.Kind, ErrMalformed)
		}
		return p, nil

	default:
		return nil, fmt.Errorf("relay.Decode: unknown type %q: %w", env.Type, ErrMalformed)
	}
}

func encode(msgType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("relay.encode: %s payload: %w", msgType, err)
	}
	frame, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		return nil, fmt.Errorf("relay.encode: %s envelope: %w", msgType, err)
	}
	return frame, nil
}

// EncodeJoinBoard builds a client join frame.
func EncodeJoinBoard(boardID uuid.UUID, user domain.OnlineUser) ([]byte, error) {
	return encode(TypeJoinBoard, JoinBoard{BoardID: boardID, User: user})
}

// EncodeLeaveBoard builds a client leave frame.
func EncodeLeaveBoard(boardID uuid.UUID) ([]byte, error) {
	return encode(TypeLeaveBoard, LeaveBoard{BoardID: boardID})
}

// EncodeUpdateBoard builds a client change-notification frame.
func EncodeUpdateBoard(boardID uuid.UUID, message, userName string) ([]byte, error) {
	return encode(TypeUpdateBoard, UpdateBoard{BoardID: boardID, Message: message, UserName: userName})
}

// EncodeUsersUpdated builds a full presence snapshot frame.
func EncodeUsersUpdated(users []domain.OnlineUser) ([]byte, error) {
	if users == nil {
		users = []domain.OnlineUser{}
	}
	return encode(TypeUsersUpdated, users)
}

// EncodeRefreshBoard builds the refetch signal frame.
func EncodeRefreshBoard(message, userName string) ([]byte, error) {
	return encode(TypeRefreshBoard, RefreshBoard{Message: message, UserName: userName})
}

// EncodeUserInteraction builds an interaction frame.
func EncodeUserInteraction(boardID uuid.UUID, it domain.Interaction) ([]byte, error) {
	return encode(TypeUserInteraction, UserInteraction{BoardID: boardID, Interaction: it})
}
