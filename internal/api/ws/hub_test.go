package ws_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/boardlive/internal/api/ws"
	"github.com/gosuda/boardlive/internal/domain"
	"github.com/gosuda/boardlive/internal/relay"
)

// wsClient is a raw websocket participant with a decoded inbox.
type wsClient struct {
	conn  *websocket.Conn
	inbox chan any
}

func dialClient(t *testing.T, srv *httptest.Server) *wsClient {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })

	c := &wsClient{conn: conn, inbox: make(chan any, 64)}
	go func() {
		for {
			_, raw, err := conn.Read(context.Background())
			if err != nil {
				close(c.inbox)
				return
			}
			if msg, err := relay.Decode(raw); err == nil {
				c.inbox <- msg
			}
		}
	}()
	return c
}

func (c *wsClient) send(t *testing.T, frame []byte) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.conn.Write(ctx, websocket.MessageText, frame))
}

func (c *wsClient) next(t *testing.T) any {
	t.Helper()
	select {
	case msg, ok := <-c.inbox:
		require.True(t, ok, "connection closed while waiting for a frame")
		return msg
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return nil
	}
}

func (c *wsClient) nextPresence(t *testing.T) []domain.OnlineUser {
	t.Helper()
	msg := c.next(t)
	users, ok := msg.([]domain.OnlineUser)
	require.True(t, ok, "expected users-updated, got %T", msg)
	return users
}

func (c *wsClient) join(t *testing.T, boardID uuid.UUID, user domain.OnlineUser) {
	t.Helper()
	frame, err := relay.EncodeJoinBoard(boardID, user)
	require.NoError(t, err)
	c.send(t, frame)
}

func TestHubEndToEnd(t *testing.T) {
	t.Parallel()

	hub := ws.NewHub(relay.NewRegistry(nil))
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	boardID := uuid.New()
	alice := domain.OnlineUser{ID: uuid.New(), Name: "Alice"}
	bob := domain.OnlineUser{ID: uuid.New(), Name: "Bob"}

	// Alice joins and sees herself.
	a := dialClient(t, srv)
	a.join(t, boardID, alice)
	require.Equal(t, []domain.OnlineUser{alice}, a.nextPresence(t))

	// Bob joins; both get the two-person snapshot in join order.
	b := dialClient(t, srv)
	b.join(t, boardID, bob)
	require.Equal(t, []domain.OnlineUser{alice, bob}, a.nextPresence(t))
	require.Equal(t, []domain.OnlineUser{alice, bob}, b.nextPresence(t))

	// Alice starts dragging: Bob sees it, Alice does not hear her own echo.
	frame, err := relay.EncodeUserInteraction(boardID, domain.Interaction{
		Kind:     domain.InteractionDragStart,
		TargetID: boardID,
		UserID:   alice.ID,
		UserName: alice.Name,
	})
	require.NoError(t, err)
	a.send(t, frame)

	it, ok := b.next(t).(relay.UserInteraction)
	require.True(t, ok)
	assert.Equal(t, domain.InteractionDragStart, it.Kind)
	assert.Equal(t, alice.ID, it.UserID)

	// Alice announces a mutation: Bob receives a refresh signal.
	frame, err = relay.EncodeUpdateBoard(boardID, "cards reordered", alice.Name)
	require.NoError(t, err)
	a.send(t, frame)

	refresh, ok := b.next(t).(relay.RefreshBoard)
	require.True(t, ok)
	assert.Equal(t, "cards reordered", refresh.Message)
	assert.Equal(t, "Alice", refresh.UserName)

	select {
	case msg := <-a.inbox:
		t.Fatalf("sender must not receive its own relayed frames, got %#v", msg)
	case <-time.After(100 * time.Millisecond):
	}

	// Alice's transport drops; Bob gets the shrunken presence snapshot.
	_ = a.conn.Close(websocket.StatusGoingAway, "tab closed")

	require.Equal(t, []domain.OnlineUser{bob}, b.nextPresence(t))
}

func TestHubExplicitLeave(t *testing.T) {
	t.Parallel()

	hub := ws.NewHub(relay.NewRegistry(nil))
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	boardID := uuid.New()
	alice := domain.OnlineUser{ID: uuid.New(), Name: "Alice"}
	bob := domain.OnlineUser{ID: uuid.New(), Name: "Bob"}

	a := dialClient(t, srv)
	a.join(t, boardID, alice)
	a.nextPresence(t)

	b := dialClient(t, srv)
	b.join(t, boardID, bob)
	a.nextPresence(t)
	b.nextPresence(t)

	// Bob leaves the board without dropping the connection.
	frame, err := relay.EncodeLeaveBoard(boardID)
	require.NoError(t, err)
	b.send(t, frame)

	require.Equal(t, []domain.OnlineUser{alice}, a.nextPresence(t))
	assert.Equal(t, 1, hub.Registry().RoomCount())
}

func TestHubMalformedFramesAreDropped(t *testing.T) {
	t.Parallel()

	hub := ws.NewHub(relay.NewRegistry(nil))
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	boardID := uuid.New()
	alice := domain.OnlineUser{ID: uuid.New(), Name: "Alice"}

	a := dialClient(t, srv)
	a.send(t, []byte(`{"type":"no-such-event","data":{}}`))
	a.send(t, []byte(`not json at all`))

	// The connection survives garbage and still works.
	a.join(t, boardID, alice)
	require.Equal(t, []domain.OnlineUser{alice}, a.nextPresence(t))
}
