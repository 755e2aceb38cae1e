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

type CreateBoardInput struct {
	Body struct {
		Title string `json:"title" minLength:"1" maxLength:"255" doc:"Board title"`
	}
}

type CreateBoardOutput struct {
	Body *domain.Board
}

type ListBoardsOutput struct {
	Body []*domain.Board
}

type GetBoardInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
}

// ListWithCards is one board column with its cards in display order.
type ListWithCards struct {
	List  *domain.List   `json:"list"`
	Cards []*domain.Card `json:"cards"`
}

// BoardSnapshot is the full state a client needs to render a board. Clients
// re-fetch it on every refresh-board frame.
type BoardSnapshot struct {
	Board   *domain.Board         `json:"board"`
	Lists   []*ListWithCards      `json:"lists"`
	Members []*domain.BoardMember `json:"members"`
}

type GetBoardOutput struct {
	Body *BoardSnapshot
}

type DeleteBoardInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
}

func RegisterBoardRoutes(api huma.API, store DataStore, pub ChangePublisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-board",
		Method:      http.MethodPost,
		Path:        "/boards",
		Summary:     "Create a new board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *CreateBoardInput) (*CreateBoardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		b, err := domain.NewBoard(userID, input.Body.Title)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		if err := store.Boards().Create(ctx, b); err != nil {
			return nil, huma.Error500InternalServerError("failed to create board", err)
		}

		return &CreateBoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-boards",
		Method:      http.MethodGet,
		Path:        "/boards",
		Summary:     "List boards owned by the current user",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, _ *struct{}) (*ListBoardsOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		boards, err := store.Boards().List(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list boards", err)
		}

		return &ListBoardsOutput{Body: boards}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/boards/{boardID}",
		Summary:     "Get a board with its lists and cards",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error) {
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

		lists, err := store.Lists().ListByBoard(ctx, userID, input.BoardID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load lists", err)
		}

		cards, err := store.Cards().ListByBoard(ctx, userID, input.BoardID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load cards", err)
		}

		members, err := store.Members().ListByBoard(ctx, userID, input.BoardID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load members", err)
		}

		byList := make(map[uuid.UUID][]*domain.Card, len(lists))
		for _, c := range cards {
			byList[c.ListID] = append(byList[c.ListID], c)
		}

		snapshot := &BoardSnapshot{
			Board:   board,
			Lists:   make([]*ListWithCards, 0, len(lists)),
			Members: members,
		}
		for _, l := range lists {
			column := &ListWithCards{List: l, Cards: byList[l.ID]}
			if column.Cards == nil {
				column.Cards = make([]*domain.Card, 0)
			}
			snapshot.Lists = append(snapshot.Lists, column)
		}

		return &GetBoardOutput{Body: snapshot}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-board",
		Method:      http.MethodDelete,
		Path:        "/boards/{boardID}",
		Summary:     "Delete a board and everything on it",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *DeleteBoardInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if err := store.Boards().Delete(ctx, userID, input.BoardID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete board", err)
		}

		userName, _ := middleware.UserNameFromContext(ctx)
		notifyChange(ctx, pub, input.BoardID, "board deleted", userName)
		return nil, nil
	})
}
