package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackuper struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeBackuper) Backup(dir string, keep int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, dir)
	return dir + "/database-x.json", f.err
}

func TestBackupService_RunOnce(t *testing.T) {
	fake := &fakeBackuper{}
	svc := NewBackupService(fake, "backups", 3, zap.NewNop().Sugar())

	svc.RunOnce()
	fake.err = errors.New("disk full")
	svc.RunOnce()

	assert.Equal(t, []string{"backups", "backups"}, fake.calls)
}

func TestBackupService_Schedule(t *testing.T) {
	svc := NewBackupService(&fakeBackuper{}, "backups", 3, zap.NewNop().Sugar())

	require.Error(t, svc.Start("every tuesday"))
	require.NoError(t, svc.Start("0 3 * * *"))
	svc.Stop()
}

func TestBackupService_WithStore(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	svc := NewBackupService(env.storage.Store, dir, 1, zap.NewNop().Sugar())
	svc.RunOnce()
	svc.RunOnce()

	name, err := env.storage.Store.Backup(dir, 1)
	require.NoError(t, err)
	assert.FileExists(t, name)
}
