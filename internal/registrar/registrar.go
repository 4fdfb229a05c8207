// Package registrar records rake tasks into the project's generic migration.
//
// One Register call handles exactly one (rake file, task name) pair. All state
// lives in the project tree; two concurrent calls on the same migration race.
package registrar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/kazz187/raketaskregistrar/internal/migration"
	"github.com/kazz187/raketaskregistrar/internal/rakefile"
	"github.com/kazz187/raketaskregistrar/pkg/cerr"
	"github.com/kazz187/raketaskregistrar/pkg/clog"
	"github.com/kazz187/raketaskregistrar/pkg/storage"
)

type Outcome int

const (
	// Registered means new entries were inserted (or would be, in a dry run).
	Registered Outcome = iota + 1
	// AlreadyRegistered means every command was known; nothing was written.
	AlreadyRegistered
)

func (o Outcome) String() string {
	switch o {
	case Registered:
		return "registered"
	case AlreadyRegistered:
		return "already_registered"
	default:
		return "unknown"
	}
}

type Request struct {
	RakeFile string
	TaskName string
	// DryRun computes the result and diff without writing anything,
	// including a migration that does not exist yet.
	DryRun bool
}

type Result struct {
	Outcome       Outcome
	MigrationPath string
	// MigrationCreated is set when this run created the migration file.
	MigrationCreated bool
	Task             rakefile.Task
	// Added lists the commands inserted, in order.
	Added []string
	// Diff is a unified diff of the migration before and after insertion.
	Diff string
}

type Registrar struct {
	store   storage.Storage
	locator *migration.Locator
	runner  string
}

type Option func(*Registrar)

// WithRunner sets the prefix of synthesized default commands.
func WithRunner(runner string) Option {
	return func(r *Registrar) { r.runner = runner }
}

func New(store storage.Storage, locator *migration.Locator, opts ...Option) *Registrar {
	r := &Registrar{
		store:   store,
		locator: locator,
		runner:  rakefile.DefaultRunner,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validate reports a usage error when either argument is missing.
// It touches no files, so callers can run it before any setup.
func (req Request) Validate() error {
	if req.RakeFile == "" || req.TaskName == "" {
		return cerr.NewError(cerr.InvalidArgument, "usage: rake-task-registrar <rake_file> <task_name>", nil)
	}
	return nil
}

// Register extracts req.TaskName from req.RakeFile and records its new
// commands in the generic migration. Every failure is detected before the
// migration is written, so it is either rewritten once with all new entries
// or left untouched.
func (r *Registrar) Register(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	clog.AddAttributes(ctx, map[string]any{
		clog.RakeFileAttributeKey: req.RakeFile,
		clog.TaskAttributeKey:     req.TaskName,
	})

	ok, err := r.store.Exists(ctx, req.RakeFile)
	if err != nil {
		return nil, cerr.WrapStorageReadError("rake file", err)
	}
	if !ok {
		return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("Rake file not found at: %s", req.RakeFile), nil)
	}
	src, err := r.store.Read(ctx, req.RakeFile)
	if err != nil {
		return nil, cerr.WrapStorageReadError("rake file", err)
	}
	task := rakefile.Extract(rakefile.SplitLines(src), req.RakeFile, req.TaskName, rakefile.WithRunner(r.runner))
	slog.DebugContext(ctx, "extracted task", "description", task.Description, "commands", task.Commands)

	locate := r.locator.Locate
	if req.DryRun {
		locate = r.locator.Preview
	}
	artifact, err := locate(ctx)
	if err != nil {
		return nil, err
	}
	res := &Result{
		MigrationPath:    artifact.Path,
		MigrationCreated: artifact.Created,
		Task:             task,
	}

	commands := migration.NewCommands(string(artifact.Content), task)
	if len(commands) == 0 {
		res.Outcome = AlreadyRegistered
		slog.InfoContext(ctx, "task already registered", "path", artifact.Path)
		return res, nil
	}

	before := migration.SplitLines(artifact.Content)
	after, err := migration.Insert(before, migration.Entries(task, commands))
	if err != nil {
		return nil, err
	}
	res.Outcome = Registered
	res.Added = commands
	res.Diff = unifiedDiff(artifact.Path, before, after)

	if req.DryRun {
		slog.InfoContext(ctx, "dry run, migration not written", "path", artifact.Path, "commands", len(commands))
		return res, nil
	}
	if err := r.store.Write(ctx, artifact.Path, []byte(strings.Join(after, ""))); err != nil {
		return nil, cerr.WrapStorageWriteError("migration file", err)
	}
	slog.InfoContext(ctx, "registered task", "path", artifact.Path, "commands", len(commands))
	return res, nil
}

func unifiedDiff(path string, before, after []string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}
