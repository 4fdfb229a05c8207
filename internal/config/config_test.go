package config

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/raketaskregistrar/internal/migration"
	"github.com/kazz187/raketaskregistrar/pkg/storage"
)

func newStore(t *testing.T) *storage.LocalStorage {
	t.Helper()
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoadEnvDefaults(t *testing.T) {
	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "local", env.Env)
	assert.Equal(t, ".", env.ProjectDir)
	assert.Equal(t, "local", StorageEnvFromEnv(env).Type)
	assert.Equal(t, slog.LevelInfo, env.SlogLevel())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RAKEREG_LOG_LEVEL", "debug")
	t.Setenv("RAKEREG_STORAGE_TYPE", "s3")
	t.Setenv("RAKEREG_S3_BUCKET", "projects")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, env.SlogLevel())
	assert.Equal(t, "s3", env.Type)
	assert.Equal(t, "projects", env.S3Bucket)
}

func TestSlogLevelFallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&BaseEnv{LogLevel: "loud"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (*BaseEnv)(nil).SlogLevel())
}

func TestLoadProjectDefaults(t *testing.T) {
	p, err := LoadProject(context.Background(), newStore(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultProject(), p)
	assert.Equal(t, migration.DefaultScaffold(), p.Scaffold())
	assert.Len(t, p.LocatorOptions(), 3)
}

func TestLoadProjectFileAndEnv(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Write(ctx, ProjectFile, []byte(`
migrate_dir: db/data_migrate
migration_class: RegisterJobs
migration_version: ""
runner: bin/spring
`)))
	t.Setenv("RAKEREG_PERSISTENCE_MODEL", "ScheduledJob")

	p, err := LoadProject(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "db/data_migrate", p.MigrateDir)
	assert.Equal(t, "RegisterJobs", p.ClassName)
	assert.Equal(t, "", p.MigrationVersion)
	assert.Equal(t, "bin/spring", p.Runner)
	assert.Equal(t, "ScheduledJob", p.PersistenceModel)
	assert.Equal(t, migration.DefaultBasename, p.Basename)
}

func TestLoadProjectInvalid(t *testing.T) {
	ctx := context.Background()

	store := newStore(t)
	require.NoError(t, store.Write(ctx, ProjectFile, []byte("migrate_dir: [unclosed\n")))
	_, err := LoadProject(ctx, store)
	assert.Error(t, err)

	store = newStore(t)
	require.NoError(t, store.Write(ctx, ProjectFile, []byte("migration_basename: \"\"\n")))
	_, err = LoadProject(ctx, store)
	assert.ErrorContains(t, err, "migration_basename")
}
