package v1_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gosuda/boardlive/internal/domain"
	"github.com/gosuda/boardlive/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject user identity into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID, name string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserName, name)
	return ctx
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users   domain.UserRepository
	boards  domain.BoardRepository
	lists   domain.ListRepository
	cards   domain.CardRepository
	members domain.BoardMemberRepository
}

func (m *mockDataStore) Users() domain.UserRepository          { return m.users }
func (m *mockDataStore) Boards() domain.BoardRepository        { return m.boards }
func (m *mockDataStore) Lists() domain.ListRepository          { return m.lists }
func (m *mockDataStore) Cards() domain.CardRepository          { return m.cards }
func (m *mockDataStore) Members() domain.BoardMemberRepository { return m.members }

// ---------------------------------------------------------------------------
// Mock BoardRepository
// ---------------------------------------------------------------------------

type mockBoardRepo struct {
	createFunc          func(ctx context.Context, b *domain.Board) error
	getByIDFunc         func(ctx context.Context, userID, id uuid.UUID) (*domain.Board, error)
	getByInviteCodeFunc func(ctx context.Context, code string) (*domain.Board, error)
	listFunc            func(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	deleteFunc          func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	return m.createFunc(ctx, b)
}

func (m *mockBoardRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Board, error) {
	return m.getByIDFunc(ctx, userID, id)
}

func (m *mockBoardRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Board, error) {
	return m.getByInviteCodeFunc(ctx, code)
}

func (m *mockBoardRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockBoardRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.deleteFunc(ctx, ownerID, id)
}

// ---------------------------------------------------------------------------
// Mock ListRepository
// ---------------------------------------------------------------------------

type mockListRepo struct {
	createFunc      func(ctx context.Context, ownerID, boardID uuid.UUID, title string) (*domain.List, error)
	listByBoardFunc func(ctx context.Context, ownerID, boardID uuid.UUID) ([]*domain.List, error)
	updateOrderFunc func(ctx context.Context, ownerID uuid.UUID, updates []domain.ListOrderUpdate) error
	deleteFunc      func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockListRepo) Create(ctx context.Context, ownerID, boardID uuid.UUID, title string) (*domain.List, error) {
	return m.createFunc(ctx, ownerID, boardID, title)
}

func (m *mockListRepo) ListByBoard(ctx context.Context, ownerID, boardID uuid.UUID) ([]*domain.List, error) {
	return m.listByBoardFunc(ctx, ownerID, boardID)
}

func (m *mockListRepo) UpdateOrder(ctx context.Context, ownerID uuid.UUID, updates []domain.ListOrderUpdate) error {
	return m.updateOrderFunc(ctx, ownerID, updates)
}

func (m *mockListRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.deleteFunc(ctx, ownerID, id)
}

// ---------------------------------------------------------------------------
// Mock CardRepository
// ---------------------------------------------------------------------------

type mockCardRepo struct {
	createFunc      func(ctx context.Context, ownerID, listID, authorID uuid.UUID, title, description string) (*domain.Card, error)
	listByListFunc  func(ctx context.Context, ownerID, listID uuid.UUID) ([]*domain.Card, error)
	listByBoardFunc func(ctx context.Context, ownerID, boardID uuid.UUID) ([]*domain.Card, error)
	updateOrderFunc func(ctx context.Context, ownerID uuid.UUID, updates []domain.CardOrderUpdate) error
	deleteFunc      func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockCardRepo) Create(ctx context.Context, ownerID, listID, authorID uuid.UUID, title, description string) (*domain.Card, error) {
	return m.createFunc(ctx, ownerID, listID, authorID, title, description)
}

func (m *mockCardRepo) ListByList(ctx context.Context, ownerID, listID uuid.UUID) ([]*domain.Card, error) {
	return m.listByListFunc(ctx, ownerID, listID)
}

func (m *mockCardRepo) ListByBoard(ctx context.Context, ownerID, boardID uuid.UUID) ([]*domain.Card, error) {
	return m.listByBoardFunc(ctx, ownerID, boardID)
}

func (m *mockCardRepo) UpdateOrder(ctx context.Context, ownerID uuid.UUID, updates []domain.CardOrderUpdate) error {
	return m.updateOrderFunc(ctx, ownerID, updates)
}

func (m *mockCardRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.deleteFunc(ctx, ownerID, id)
}

// ---------------------------------------------------------------------------
// Mock BoardMemberRepository
// ---------------------------------------------------------------------------

type mockMemberRepo struct {
	addFunc         func(ctx context.Context, m *domain.BoardMember) error
	roleFunc        func(ctx context.Context, boardID, userID uuid.UUID) (domain.MemberRole, error)
	listByBoardFunc func(ctx context.Context, userID, boardID uuid.UUID) ([]*domain.BoardMember, error)
}

func (m *mockMemberRepo) Add(ctx context.Context, bm *domain.BoardMember) error {
	return m.addFunc(ctx, bm)
}

func (m *mockMemberRepo) Role(ctx context.Context, boardID, userID uuid.UUID) (domain.MemberRole, error) {
	return m.roleFunc(ctx, boardID, userID)
}

func (m *mockMemberRepo) ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]*domain.BoardMember, error) {
	return m.listByBoardFunc(ctx, userID, boardID)
}

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc     func(ctx context.Context, u *domain.User) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	updateFunc     func(ctx context.Context, u *domain.User) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.updateFunc(ctx, u)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc func(ctx context.Context, email, password, name string) (*domain.User, error)
	loginFunc    func(ctx context.Context, email, password string) (string, string, error)
	refreshFunc  func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, name)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFunc(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Recording ChangePublisher
// ---------------------------------------------------------------------------

type published struct {
	channel string
	payload []byte
}

type recordingPublisher struct {
	mu     sync.Mutex
	frames []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, published{channel: channel, payload: payload})
	return p.err
}

func (p *recordingPublisher) published() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]published, len(p.frames))
	copy(out, p.frames)
	return out
}
