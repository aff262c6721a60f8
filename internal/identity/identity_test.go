package identity

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindBySubject(ctx context.Context, subject string) (*models.User, error) {
	args := m.Called(ctx, subject)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) TouchLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockUserStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	args := m.Called(ctx, id, active)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestResolver_MapsUserAndTouchesLastAccess(t *testing.T) {
	store := &mockUserStore{}
	user := &models.User{ID: uuid.New(), AuthUserID: "auth-1", FullName: "Ana Pérez", Role: "medico", Active: true}

	store.On("FindBySubject", mock.Anything, "auth-1").Return(user, nil).Once()
	store.On("TouchLastAccess", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	r := NewResolver(store, nil, time.Minute, quietLog())
	id, err := r.Resolve(context.Background(), "auth-1")
	require.NoError(t, err)

	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, "medico", id.Role)
	assert.True(t, id.Active)
	store.AssertExpectations(t)
}

func TestResolver_UnknownSubject(t *testing.T) {
	store := &mockUserStore{}
	store.On("FindBySubject", mock.Anything, "ghost").Return(nil, ErrUnknownUser)

	r := NewResolver(store, nil, time.Minute, quietLog())
	_, err := r.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)
	store.AssertNotCalled(t, "TouchLastAccess", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_TouchFailureIsNotFatal(t *testing.T) {
	store := &mockUserStore{}
	user := &models.User{ID: uuid.New(), AuthUserID: "auth-2", Role: "tutor", Active: false}

	store.On("FindBySubject", mock.Anything, "auth-2").Return(user, nil)
	store.On("TouchLastAccess", mock.Anything, user.ID, mock.Anything).Return(assert.AnError)

	r := NewResolver(store, nil, 0, quietLog())
	id, err := r.Resolve(context.Background(), "auth-2")
	require.NoError(t, err)
	assert.False(t, id.Active)
}

func TestResolver_SetActiveDropsCachedIdentity(t *testing.T) {
	store := &mockUserStore{}
	user := &models.User{ID: uuid.New(), AuthUserID: "auth-9", Role: "recepcion", Active: false}
	store.On("SetActive", mock.Anything, user.ID, false).Return(user, nil).Once()

	// nothing listens here, so the cache delete is attempted and fails loudly
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	log, hook := logtest.NewNullLogger()
	r := NewResolver(store, rdb, time.Minute, log)

	id, err := r.SetActive(context.Background(), user.ID, false)
	require.NoError(t, err)
	assert.False(t, id.Active)
	assert.Equal(t, "auth-9", id.Subject)
	store.AssertExpectations(t)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "identity cache delete failed", hook.LastEntry().Message)
}

func TestResolver_SetActiveUnknownUser(t *testing.T) {
	store := &mockUserStore{}
	missing := uuid.New()
	store.On("SetActive", mock.Anything, missing, true).Return(nil, ErrUnknownUser)

	r := NewResolver(store, nil, time.Minute, quietLog())
	_, err := r.SetActive(context.Background(), missing, true)
	assert.ErrorIs(t, err, ErrUnknownUser)
}
