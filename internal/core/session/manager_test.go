package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-inventory/internal/domain"
)

type memStore struct {
	values  map[string][]byte
	ttls    map[string]time.Duration
	setKeys []string
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memStore) Get(_ context.Context, token string) ([]byte, error) {
	b, ok := s.values[token]
	if !ok {
		return nil, ErrNoSession
	}
	return b, nil
}

func (s *memStore) Set(_ context.Context, token string, value []byte, ttl time.Duration) error {
	s.values[token] = value
	s.ttls[token] = ttl
	s.setKeys = append(s.setKeys, token)
	return nil
}

func (s *memStore) Delete(_ context.Context, token string) error {
	delete(s.values, token)
	return nil
}

type stubUsers struct {
	domain.UserRepository
	byID map[string]*domain.User
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	return s.byID[id], nil
}

func TestEstablishAndResolve(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	users := &stubUsers{byID: map[string]*domain.User{
		"u1": {ID: "u1", Username: "alice", Role: domain.RoleUser},
	}}
	m := NewManager(store, users, 7*24*time.Hour, 24*time.Hour)

	token, err := m.Establish(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, token, 64)
	assert.Equal(t, 7*24*time.Hour, store.ttls[token])

	u, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
}

func TestResolveUnknownTokenIsAnonymous(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemStore(), &stubUsers{byID: map[string]*domain.User{}}, time.Hour, time.Minute)

	u, err := m.Resolve(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = m.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestResolveDeletedUserIsAnonymousAndDestroysSession(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	users := &stubUsers{byID: map[string]*domain.User{
		"u1": {ID: "u1", Username: "alice"},
	}}
	m := NewManager(store, users, time.Hour, time.Minute)

	token, err := m.Establish(ctx, "u1")
	require.NoError(t, err)

	delete(users.byID, "u1") // 用户被删

	u, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, u)
	_, ok := store.values[token]
	assert.False(t, ok, "session should be destroyed")
}

func TestLazyTouch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	users := &stubUsers{byID: map[string]*domain.User{
		"u1": {ID: "u1", Username: "alice"},
	}}
	m := NewManager(store, users, 7*24*time.Hour, 24*time.Hour)

	base := time.Now()
	m.now = func() time.Time { return base }

	token, err := m.Establish(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, store.setKeys, 1)

	// 阈值内多次解析不回写
	m.now = func() time.Time { return base.Add(23 * time.Hour) }
	_, err = m.Resolve(ctx, token)
	require.NoError(t, err)
	_, err = m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Len(t, store.setKeys, 1)

	// 过了阈值才回写一次
	m.now = func() time.Time { return base.Add(25 * time.Hour) }
	_, err = m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Len(t, store.setKeys, 2)
}

func TestInvalidateRemovesServerState(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	users := &stubUsers{byID: map[string]*domain.User{"u1": {ID: "u1"}}}
	m := NewManager(store, users, time.Hour, time.Minute)

	token, err := m.Establish(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, m.Invalidate(ctx, token))

	u, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, u)
}
