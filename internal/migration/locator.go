package migration

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/kazz187/raketaskregistrar/pkg/cerr"
	"github.com/kazz187/raketaskregistrar/pkg/storage"
)

// TimestampLayout names new migrations the way Rails does: UTC, second precision.
const TimestampLayout = "20060102150405"

// Artifact is the generic migration file as found, or as just created.
type Artifact struct {
	Path    string
	Created bool
	Content []byte
}

// Locator finds the single generic migration of a project. Nothing is cached:
// every call searches the migration directory again.
type Locator struct {
	store    storage.Storage
	dir      string
	basename string
	scaffold Scaffold
	now      func() time.Time
}

type LocatorOption func(*Locator)

func WithDir(dir string) LocatorOption {
	return func(l *Locator) { l.dir = dir }
}

func WithBasename(basename string) LocatorOption {
	return func(l *Locator) { l.basename = basename }
}

func WithScaffold(s Scaffold) LocatorOption {
	return func(l *Locator) { l.scaffold = s }
}

// WithClock replaces time.Now when naming new migrations.
func WithClock(now func() time.Time) LocatorOption {
	return func(l *Locator) { l.now = now }
}

func NewLocator(store storage.Storage, opts ...LocatorOption) *Locator {
	l := &Locator{
		store:    store,
		dir:      DefaultDir,
		basename: DefaultBasename,
		scaffold: DefaultScaffold(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find returns the path of the first migration whose name ends with
// "_<basename>", in listing order, or "" when there is none.
func (l *Locator) Find(ctx context.Context) (string, error) {
	paths, err := l.store.List(ctx, l.dir)
	if err != nil {
		return "", cerr.WrapStorageListError("migration directory", err)
	}
	suffix := "_" + l.basename
	for _, p := range paths {
		if strings.HasSuffix(path.Base(p), suffix) {
			return p, nil
		}
	}
	return "", nil
}

// Locate returns the generic migration, writing a new one from the scaffold
// when the directory has none. This is the only place a migration is created.
func (l *Locator) Locate(ctx context.Context) (*Artifact, error) {
	return l.locate(ctx, true)
}

// Preview is Locate without side effects: a missing migration is returned
// with Created set but is not written.
func (l *Locator) Preview(ctx context.Context) (*Artifact, error) {
	return l.locate(ctx, false)
}

func (l *Locator) locate(ctx context.Context, create bool) (*Artifact, error) {
	p, err := l.Find(ctx)
	if err != nil {
		return nil, err
	}
	if p != "" {
		content, err := l.store.Read(ctx, p)
		if err != nil {
			return nil, cerr.WrapStorageReadError("migration file", err)
		}
		return &Artifact{Path: p, Content: content}, nil
	}

	content, err := l.scaffold.Render()
	if err != nil {
		return nil, cerr.NewError(cerr.Internal, "failed to render migration", err)
	}
	p = path.Join(l.dir, l.now().UTC().Format(TimestampLayout)+"_"+l.basename)
	if !create {
		return &Artifact{Path: p, Created: true, Content: content}, nil
	}
	if err := l.store.Write(ctx, p, content); err != nil {
		return nil, cerr.WrapStorageWriteError("migration file", err)
	}
	slog.InfoContext(ctx, "created migration file", "path", p)
	return &Artifact{Path: p, Created: true, Content: content}, nil
}
