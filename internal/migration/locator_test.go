package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/raketaskregistrar/pkg/storage"
)

func newStore(t *testing.T) *storage.LocalStorage {
	t.Helper()
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 17, 4, 5, 0, time.FixedZone("JST", 9*60*60))
}

func TestLocatorCreatesMigration(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	l := NewLocator(store, WithClock(fixedClock))

	a, err := l.Locate(ctx)
	require.NoError(t, err)
	assert.True(t, a.Created)
	assert.Equal(t, "db/migrate/20240309080405_add_rake_tasks_for_new_tasks.rb", a.Path)
	assert.Equal(t, emptyMigration, string(a.Content))

	onDisk, err := os.ReadFile(filepath.Join(store.BasePath(), a.Path))
	require.NoError(t, err)
	assert.Equal(t, emptyMigration, string(onDisk))
}

func TestLocatorReusesMigration(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	first, err := NewLocator(store, WithClock(fixedClock)).Locate(ctx)
	require.NoError(t, err)

	later := func() time.Time { return fixedClock().Add(time.Hour) }
	second, err := NewLocator(store, WithClock(later)).Locate(ctx)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Path, second.Path)

	paths, err := store.List(ctx, DefaultDir)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestLocatorFindsBySuffix(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Write(ctx, "db/migrate/20200101000000_create_users.rb", []byte("class CreateUsers\nend\n")))
	require.NoError(t, store.Write(ctx, "db/migrate/20210101000000_add_rake_tasks_for_new_tasks.rb", []byte("existing\n")))
	require.NoError(t, store.Write(ctx, "db/migrate/20220101000000_add_rake_tasks_for_new_tasks.rb", []byte("newer\n")))

	a, err := NewLocator(store).Locate(ctx)
	require.NoError(t, err)
	assert.False(t, a.Created)
	assert.Equal(t, "db/migrate/20210101000000_add_rake_tasks_for_new_tasks.rb", a.Path)
	assert.Equal(t, "existing\n", string(a.Content))
}

func TestLocatorIgnoresNameWithoutSeparator(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Write(ctx, "db/migrate/add_rake_tasks_for_new_tasks.rb", []byte("bare\n")))

	p, err := NewLocator(store).Find(ctx)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestLocatorOptions(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	s := DefaultScaffold()
	s.ClassName = "RegisterJobs"
	l := NewLocator(store,
		WithDir("migrations"),
		WithBasename("register_jobs.rb"),
		WithScaffold(s),
		WithClock(fixedClock),
	)

	a, err := l.Locate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "migrations/20240309080405_register_jobs.rb", a.Path)
	assert.Contains(t, string(a.Content), "class RegisterJobs < ActiveRecord::Migration[6.1]")
}

func TestLocatorPreviewDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	a, err := NewLocator(store, WithClock(fixedClock)).Preview(ctx)
	require.NoError(t, err)
	assert.True(t, a.Created)
	assert.Equal(t, emptyMigration, string(a.Content))

	paths, err := store.List(ctx, DefaultDir)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
