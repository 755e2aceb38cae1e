package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	v1 "github.com/gosuda/boardlive/internal/api/v1"
	"github.com/gosuda/boardlive/internal/domain"
)

// API is the persistence-service client. It satisfies reorder.Persister so
// the engine can push batched order updates through it.
type API struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewAPI creates a client for the REST API rooted at baseURL (including the
// /api/v1 prefix). token may be empty for the auth endpoints.
func NewAPI(baseURL, token string) *API {
	return &API{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy of the client authenticated with token. Used
// after login.
func (a *API) WithToken(token string) *API {
	return &API{baseURL: a.baseURL, token: token, http: a.http}
}

// Login exchanges credentials for tokens.
func (a *API) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	err = a.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", "", fmt.Errorf("client.API.Login: %w", err)
	}
	return out.AccessToken, out.RefreshToken, nil
}

// GetBoard fetches the full snapshot a board view renders from.
func (a *API) GetBoard(ctx context.Context, boardID uuid.UUID) (*v1.BoardSnapshot, error) {
	var out v1.BoardSnapshot
	if err := a.do(ctx, http.MethodGet, "/boards/"+boardID.String(), nil, &out); err != nil {
		return nil, fmt.Errorf("client.API.GetBoard: %w", err)
	}
	return &out, nil
}

// CreateBoard creates an empty board owned by the caller.
func (a *API) CreateBoard(ctx context.Context, title string) (*domain.Board, error) {
	var out domain.Board
	if err := a.do(ctx, http.MethodPost, "/boards", map[string]string{"title": title}, &out); err != nil {
		return nil, fmt.Errorf("client.API.CreateBoard: %w", err)
	}
	return &out, nil
}

// JoinBoard adds the caller as a member of the board with that invite code.
func (a *API) JoinBoard(ctx context.Context, inviteCode string) (*domain.Board, error) {
	var out domain.Board
	if err := a.do(ctx, http.MethodPost, "/boards/join", map[string]string{"inviteCode": inviteCode}, &out); err != nil {
		return nil, fmt.Errorf("client.API.JoinBoard: %w", err)
	}
	return &out, nil
}

// InviteMember adds the user with that email to the board roster. An empty
// role grants plain membership.
func (a *API) InviteMember(ctx context.Context, boardID uuid.UUID, email string, role domain.MemberRole) (*domain.BoardMember, error) {
	body := map[string]string{"email": email}
	if role != "" {
		body["role"] = string(role)
	}

	var out domain.BoardMember
	path := "/boards/" + boardID.String() + "/members"
	if err := a.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, fmt.Errorf("client.API.InviteMember: %w", err)
	}
	return &out, nil
}

// CreateList appends a list to a board.
func (a *API) CreateList(ctx context.Context, boardID uuid.UUID, title string) (*domain.List, error) {
	var out domain.List
	path := "/boards/" + boardID.String() + "/lists"
	if err := a.do(ctx, http.MethodPost, path, map[string]string{"title": title}, &out); err != nil {
		return nil, fmt.Errorf("client.API.CreateList: %w", err)
	}
	return &out, nil
}

// CreateCard appends a card to a list.
func (a *API) CreateCard(ctx context.Context, boardID, listID uuid.UUID, title, description string) (*domain.Card, error) {
	var out domain.Card
	path := "/boards/" + boardID.String() + "/lists/" + listID.String() + "/cards"
	body := map[string]string{"title": title, "description": description}
	if err := a.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, fmt.Errorf("client.API.CreateCard: %w", err)
	}
	return &out, nil
}

// DeleteList removes a list and its cards.
func (a *API) DeleteList(ctx context.Context, boardID, listID uuid.UUID) error {
	path := "/boards/" + boardID.String() + "/lists/" + listID.String()
	if err := a.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("client.API.DeleteList: %w", err)
	}
	return nil
}

// DeleteCard removes a card.
func (a *API) DeleteCard(ctx context.Context, boardID, cardID uuid.UUID) error {
	path := "/boards/" + boardID.String() + "/cards/" + cardID.String()
	if err := a.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("client.API.DeleteCard: %w", err)
	}
	return nil
}

// UpdateListOrder persists a batched list reorder.
func (a *API) UpdateListOrder(ctx context.Context, boardID uuid.UUID, updates []domain.ListOrderUpdate) error {
	path := "/boards/" + boardID.String() + "/lists/order"
	body := map[string]any{"updates": updates}
	if err := a.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("client.API.UpdateListOrder: %w", err)
	}
	return nil
}

// UpdateCardOrder persists a batched card reorder, including cross-list
// parent changes.
func (a *API) UpdateCardOrder(ctx context.Context, boardID uuid.UUID, updates []domain.CardOrderUpdate) error {
	path := "/boards/" + boardID.String() + "/cards/order"
	body := map[string]any{"updates": updates}
	if err := a.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("client.API.UpdateCardOrder: %w", err)
	}
	return nil
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrConflict
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
