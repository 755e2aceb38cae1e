package domain

import "github.com/google/uuid"

// OnlineUser is one entry of a room presence snapshot. The list is keyed by
// connection, so the same user viewing a board from two tabs appears twice;
// consumers must not assume ID uniqueness.
type OnlineUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image,omitempty"`
}

// Participant binds a live connection to the user behind it. Created on
// join-board, removed on leave-board or transport disconnect. Never persisted.
type Participant struct {
	ConnectionID string
	User         OnlineUser
}

// InteractionKind discriminates the ephemeral UI hints relayed between
// participants of a room.
type InteractionKind string

const (
	InteractionHoverList   InteractionKind = "hover-list"
	InteractionDragStart   InteractionKind = "drag-start"
	InteractionDragEnd     InteractionKind = "drag-end"
	InteractionTypingStart InteractionKind = "typing-start"
	InteractionTypingEnd   InteractionKind = "typing-end"
)

// Valid reports whether k is one of the known interaction kinds.
func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionHoverList, InteractionDragStart, InteractionDragEnd,
		InteractionTypingStart, InteractionTypingEnd:
		return true
	default:
		return false
	}
}

// IsEnd reports whether k terminates an in-progress interaction. An end kind
// clears the client-side indicator for its target.
func (k InteractionKind) IsEnd() bool {
	return k == InteractionDragEnd || k == InteractionTypingEnd
}

// Interaction is a transient signal describing an in-progress user action
// (hover, drag, typing). Relayed to room peers and never stored server-side.
type Interaction struct {
	Kind      InteractionKind `json:"type"`
	TargetID  uuid.UUID       `json:"targetId"`
	UserID    uuid.UUID       `json:"userId"`
	UserName  string          `json:"userName"`
	UserImage string          `json:"userImage,omitempty"`
}
