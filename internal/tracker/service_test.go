package tracker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/models"
	"github.com/good-yellow-bee/taskboard/internal/storage"
)

// fakeHasher keeps tests fast; bcrypt is covered in the auth package.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, digest string) bool { return digest == "hashed:"+password }

func newTestService(t *testing.T) (*Service, *storage.SQLStorage) {
	t.Helper()

	store := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "tracker.db"), zap.NewNop())
	require.NoError(t, store.Open(context.Background()))
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	return NewService(store, fakeHasher{}, zap.NewNop()), store
}

func mustRegister(t *testing.T, svc *Service, username string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@x.com",
		Password: "pw123",
	})
	require.NoError(t, err)
	return user
}
