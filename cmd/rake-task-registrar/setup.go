package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"

	"github.com/kazz187/raketaskregistrar/internal/config"
	"github.com/kazz187/raketaskregistrar/pkg/cerr"
	"github.com/kazz187/raketaskregistrar/pkg/clog"
	"github.com/kazz187/raketaskregistrar/pkg/storage"
)

type runEnv struct {
	ctx     context.Context
	env     *config.Env
	project *config.Project
	store   storage.Storage
	// local is nil unless the project lives on the local filesystem.
	local *storage.LocalStorage
}

func (c *cli) setup(ctx context.Context, stderr io.Writer) (*runEnv, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if *c.projectDir != "" {
		env.ProjectDir = *c.projectDir
	}

	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewTextHandler(stderr, clog.WithLevel(level), clog.WithColor(!color.NoColor))
	} else {
		handler = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	ctx = clog.ContextWithSlog(ctx)
	clog.AddAttribute(ctx, clog.RunIDAttributeKey, ulid.Make().String())

	re := &runEnv{ctx: ctx, env: env}
	storageEnv := config.StorageEnvFromEnv(env)
	switch storageEnv.Type {
	case "s3":
		re.store, err = storage.NewS3Storage(ctx, storageEnv.S3Bucket, storageEnv.S3Prefix, storageEnv.S3Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 storage: %w", err)
		}
	case "local", "":
		re.local, err = storage.NewLocalStorage(env.ProjectDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open project: %w", err)
		}
		re.store = re.local
	default:
		return nil, fmt.Errorf("unknown storage type %q", storageEnv.Type)
	}

	re.project, err = config.LoadProject(ctx, re.store)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "configured", "project_dir", env.ProjectDir, "storage", storageEnv.Type, "migrate_dir", re.project.MigrateDir)
	return re, nil
}

// relPath turns a user supplied path into a project relative one.
func (re *runEnv) relPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if re.local != nil {
		rel, err := re.local.Rel(p)
		if err != nil {
			return "", cerr.WrapStoragePathError(p, err)
		}
		return rel, nil
	}
	return filepath.ToSlash(filepath.Clean(p)), nil
}

// requireLocal fails commands that need a working tree on this machine.
func (re *runEnv) requireLocal(command string) error {
	if re.local == nil {
		return cerr.NewError(cerr.FailedPrecondition, fmt.Sprintf("%s needs local storage", command), nil)
	}
	return nil
}

// fail logs err and prints its user message, returning the exit code.
func fail(ctx context.Context, stderr io.Writer, err error) int {
	cErr := cerr.Extract(ctx, err)
	msg := cErr.Msg
	if cErr.Code == cerr.Unknown || cErr.Code == cerr.Internal {
		slog.ErrorContext(ctx, "command failed")
		msg = cErr.Error()
	} else {
		slog.DebugContext(ctx, "command failed")
	}
	color.New(color.FgRed).Fprintf(stderr, "Error: %s\n", msg)
	return cErr.Code.ExitCode()
}
