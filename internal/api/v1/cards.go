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

type CreateCardInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	ListID  uuid.UUID `path:"listID" doc:"List ID"`
	Body    struct {
		Title       string `json:"title" minLength:"1" maxLength:"500" doc:"Card title"`
		Description string `json:"description,omitempty" doc:"Card description"`
	}
}

type CreateCardOutput struct {
	Body *domain.Card
}

type UpdateCardOrderInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	Body    struct {
		Updates []domain.CardOrderUpdate `json:"updates" minItems:"1" doc:"New order and parent list per card"`
	}
}

type DeleteCardInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	CardID  uuid.UUID `path:"cardID" doc:"Card ID"`
}

func RegisterCardRoutes(api huma.API, store DataStore, pub ChangePublisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-card",
		Method:      http.MethodPost,
		Path:        "/boards/{boardID}/lists/{listID}/cards",
		Summary:     "Add a card at the end of a list",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *CreateCardInput) (*CreateCardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		c, err := store.Cards().Create(ctx, userID, input.ListID, userID, input.Body.Title, input.Body.Description)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("list not found")
			}
			return nil, huma.Error500InternalServerError("failed to create card", err)
		}

		userName, _ := middleware.UserNameFromContext(ctx)
		notifyChange(ctx, pub, input.BoardID, "card created", userName)
		return &CreateCardOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-card-order",
		Method:      http.MethodPut,
		Path:        "/boards/{boardID}/cards/order",
		Summary:     "Reorder or move cards",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *UpdateCardOrderInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if err := store.Cards().UpdateOrder(ctx, userID, input.Body.Updates); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("card not found")
			}
			return nil, huma.Error500InternalServerError("failed to reorder cards", err)
		}

		userName, _ := middleware.UserNameFromContext(ctx)
		notifyChange(ctx, pub, input.BoardID, "cards reordered", userName)
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-card",
		Method:      http.MethodDelete,
		Path:        "/boards/{boardID}/cards/{cardID}",
		Summary:     "Delete a card",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *DeleteCardInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if err := store.Cards().Delete(ctx, userID, input.CardID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("card not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete card", err)
		}

		userName, _ := middleware.UserNameFromContext(ctx)
		notifyChange(ctx, pub, input.BoardID, "card deleted", userName)
		return nil, nil
	})
}
