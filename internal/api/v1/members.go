package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/boardlive/internal/domain"
	"github.com/gosuda/boardlive/internal/server/middleware"
)

type JoinBoardInput struct {
	Body struct {
		InviteCode string `json:"inviteCode" minLength:"3" maxLength:"12" doc:"Board invite code"`
	}
}

type JoinBoardOutput struct {
	Body *domain.Board
}

type InviteMemberInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	Body    struct {
		Email string            `json:"email" format:"email" doc:"Email of the user to invite"`
		Role  domain.MemberRole `json:"role,omitempty" enum:"member,admin" doc:"Role to grant, defaults to member"`
	}
}

type InviteMemberOutput struct {
	Body *domain.BoardMember
}

type ListMembersInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
}

type ListMembersOutput struct {
	Body []*domain.BoardMember
}

func RegisterMemberRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "join-board",
		Method:      http.MethodPost,
		Path:        "/boards/join",
		Summary:     "Join a board by invite code",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *JoinBoardInput) (*JoinBoardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		board, err := store.Boards().GetByInviteCode(ctx, input.Body.InviteCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("no board with that invite code")
			}
			return nil, huma.Error500InternalServerError("failed to look up invite code", err)
		}

		if board.OwnerID == userID {
			return nil, huma.Error409Conflict("you already own this board")
		}

		m := domain.NewBoardMember(board.ID, userID, domain.RoleMember)
		if err := store.Members().Add(ctx, m); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("you are already a member of this board")
			}
			return nil, huma.Error500InternalServerError("failed to join board", err)
		}

		return &JoinBoardOutput{Body: board}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "invite-member",
		Method:      http.MethodPost,
		Path:        "/boards/{boardID}/members",
		Summary:     "Invite a user to a board by email",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *InviteMemberInput) (*InviteMemberOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		board, err := store.Boards().GetByID(ctx, userID, input.BoardID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board not found")
			}
			return nil, huma.Error500InternalServerError("failed to load board", err)
		}

		// Plain members can see the roster but not grow it.
		if board.OwnerID != userID {
			role, roleErr := store.Members().Role(ctx, board.ID, userID)
			if roleErr != nil || role != domain.RoleAdmin {
				return nil, huma.Error403Forbidden("only the board owner or an admin can invite members")
			}
		}

		invitee, err := store.Users().GetByEmail(ctx, input.Body.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("no user with that email")
			}
			return nil, huma.Error500InternalServerError("failed to look up user", err)
		}

		if invitee.ID == board.OwnerID {
			return nil, huma.Error409Conflict("that user owns this board")
		}

		role := input.Body.Role
		if role == "" {
			role = domain.RoleMember
		}

		m := domain.NewBoardMember(board.ID, invitee.ID, role)
		if err := store.Members().Add(ctx, m); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("that user is already a member of this board")
			}
			return nil, huma.Error500InternalServerError("failed to add member", err)
		}

		return &InviteMemberOutput{Body: m}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-members",
		Method:      http.MethodGet,
		Path:        "/boards/{boardID}/members",
		Summary:     "List the members of a board",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *ListMembersInput) (*ListMembersOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		members, err := store.Members().ListByBoard(ctx, userID, input.BoardID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board not found")
			}
			return nil, huma.Error500InternalServerError("failed to list members", err)
		}

		return &ListMembersOutput{Body: members}, nil
	})
}
