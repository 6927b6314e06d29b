package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/usuarios-service/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
	block chan struct{}
}

func (m *mockNotifier) SendWelcome(to, name string) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name+" <"+to+">")
	return m.err
}

func newTestService(n Notifier) (*Service, *test.Hook) {
	log, hook := test.NewNullLogger()
	return NewService(repository.NewRepository(), log, n), hook
}

func TestCreateUser_NotifiesNewUser(t *testing.T) {
	n := &mockNotifier{}
	svc, _ := newTestService(n)

	u, err := svc.CreateUser("Ana", "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	svc.Close()
	assert.Equal(t, []string{"Ana <a@x.com>"}, n.calls)
}

func TestCreateUser_StalledNotifierDoesNotBlock(t *testing.T) {
	n := &mockNotifier{block: make(chan struct{})}
	svc, _ := newTestService(n)

	done := make(chan struct{})
	go func() {
		defer close(done)
		u, err := svc.CreateUser("Ana", "a@x.com", "p")
		assert.NoError(t, err)
		assert.Equal(t, 1, u.ID)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("CreateUser waited on the notifier")
	}

	close(n.block)
	svc.Close()
	assert.Equal(t, []string{"Ana <a@x.com>"}, n.calls)
}

func TestCreateUser_NotifierFailureIsLogged(t *testing.T) {
	n := &mockNotifier{err: errors.New("smtp down")}
	svc, hook := newTestService(n)

	u, err := svc.CreateUser("Ana", "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	svc.Close()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "smtp down")
}

func TestCreateUser_WithoutNotifier(t *testing.T) {
	svc, _ := newTestService(nil)

	for i := 1; i <= 3; i++ {
		u, err := svc.CreateUser("u", "u@x.com", "p")
		require.NoError(t, err)
		assert.Equal(t, i, u.ID)
	}
	assert.Equal(t, 3, svc.CountUsers())
	assert.Len(t, svc.ListUsers(), 3)
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newTestService(nil)
	_, err := svc.CreateUser("Ana", "a@x.com", "p")
	require.NoError(t, err)

	u, err := svc.UpdateUser(1, "Ana B", "ab@x.com", "q")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	stored, err := svc.GetUserByID(1)
	require.NoError(t, err)
	assert.Equal(t, *u, *stored)
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.UpdateUser(7, "x", "y", "z")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Zero(t, svc.CountUsers())
}
