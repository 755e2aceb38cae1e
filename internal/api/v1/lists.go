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

type CreateListInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	Body    struct {
		Title string `json:"title" minLength:"1" maxLength:"255" doc:"List title"`
	}
}

type CreateListOutput struct {
	Body *domain.List
}

type UpdateListOrderInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	Body    struct {
		Updates []domain.ListOrderUpdate `json:"updates" minItems:"1" doc:"New order per list"`
	}
}

type DeleteListInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	ListID  uuid.UUID `path:"listID" doc:"List ID"`
}

func RegisterListRoutes(api huma.API, store DataStore, pub ChangePublisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-list",
		Method:      http.MethodPost,
		Path:        "/boards/{boardID}/lists",
		Summary:     "Add a list at the end of a board",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *CreateListInput) (*CreateListOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		l, err := store.Lists().Create(ctx, userID, input.BoardID, input.Body.Title)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board not found")
			}
			return nil, huma.Error500InternalServerError("failed to create list", err)
		}

		userName, _ := middleware.UserNameFromContext(ctx)
		notifyChange(ctx, pub, input.BoardID, "list created", userName)
		return &CreateListOutput{Body: l}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-list-order",
		Method:      http.MethodPut,
		Path:        "/boards/{boardID}/lists/order",
		Summary:     "Reorder the lists of a board",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *UpdateListOrderInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if err := store.Lists().UpdateOrder(ctx, userID, input.Body.Updates); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("list not found")
			}
			return nil, huma.Error500InternalServerError("failed to reorder lists", err)
		}

		userName, _ := middleware.UserNameFromContext(ctx)
		notifyChange(ctx, pub, input.BoardID, "lists reordered", userName)
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-list",
		Method:      http.MethodDelete,
		Path:        "/boards/{boardID}/lists/{listID}",
		Summary:     "Delete a list and its cards",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *DeleteListInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if err := store.Lists().Delete(ctx, userID, input.ListID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("list not found")
			}
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the board owner or an admin can delete lists")
			}
			return nil, huma.Error500InternalServerError("failed to delete list", err)
		}

		userName, _ := middleware.UserNameFromContext(ctx)
		notifyChange(ctx, pub, input.BoardID, "list deleted", userName)
		return nil, nil
	})
}
