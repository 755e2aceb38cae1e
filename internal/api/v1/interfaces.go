package v1

import (
	"context"

	"github.com/gosuda/boardlive/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Users() domain.UserRepository
	Boards() domain.BoardRepository
	Lists() domain.ListRepository
	Cards() domain.CardRepository
	Members() domain.BoardMemberRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// ChangePublisher pushes frames onto a board's change channel so live rooms
// learn about REST mutations. *redis.PubSub satisfies this interface.
type ChangePublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// nopPublisher swallows frames. Used when the server runs without Redis.
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, []byte) error { return nil }

// NopPublisher returns a ChangePublisher that discards every frame.
func NopPublisher() ChangePublisher { return nopPublisher{} }
