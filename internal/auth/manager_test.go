package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/service"
)

type memoryCredentials struct {
	cred    *service.Credential
	saveErr error
}

func (m *memoryCredentials) SaveCredential(_ context.Context, cred service.Credential) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cred = &cred
	return nil
}

func (m *memoryCredentials) LoadCredential(_ context.Context) (service.Credential, error) {
	if m.cred == nil {
		return service.Credential{}, common.ErrNotRegistered
	}
	return *m.cred, nil
}

func (m *memoryCredentials) DeleteCredential(_ context.Context) error {
	m.cred = nil
	return nil
}

func newTestManager() (*Manager, *memoryCredentials) {
	store := &memoryCredentials{}
	return NewManager(store, bcrypt.MinCost), store
}

func TestManager_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()

	registered, err := m.IsRegistered(ctx)
	require.NoError(t, err)
	assert.False(t, registered)

	_, err = m.Login(ctx, "amna", "secret")
	assert.ErrorIs(t, err, common.ErrNotRegistered)

	require.NoError(t, m.Register(ctx, " amna ", "secret"))
	require.NotNil(t, store.cred)
	assert.Equal(t, "amna", store.cred.Username)
	assert.NotEqual(t, []byte("secret"), store.cred.Hash, "password must be hashed")

	registered, err = m.IsRegistered(ctx)
	require.NoError(t, err)
	assert.True(t, registered)

	ok, err := m.Login(ctx, "amna", "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Login(ctx, "amna", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Login(ctx, "someone", "secret")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_RegisterTwiceFails(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.Register(ctx, "amna", "secret"))
	assert.ErrorIs(t, m.Register(ctx, "other", "pw"), common.ErrAlreadyRegistered)
}

func TestManager_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()

	assert.ErrorIs(t, m.Register(ctx, "", "pw"), common.ErrValidation)
	assert.ErrorIs(t, m.Register(ctx, "amna", ""), common.ErrValidation)
	assert.Nil(t, store.cred)
}

func TestManager_SaveFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()
	store.saveErr = errors.New("disk full")

	err := m.Register(ctx, "amna", "secret")
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestManager_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.Register(ctx, "amna", "secret"))
	require.NoError(t, m.DeleteAccount(ctx))

	registered, err := m.IsRegistered(ctx)
	require.NoError(t, err)
	assert.False(t, registered)

	require.NoError(t, m.Register(ctx, "amna", "new"))
}

func TestNewManager_DefaultsCost(t *testing.T) {
	m := NewManager(&memoryCredentials{}, 0)
	assert.Equal(t, DefaultCost, m.cost)
}
