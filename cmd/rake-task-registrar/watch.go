package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kazz187/raketaskregistrar/internal/lens"
	"github.com/kazz187/raketaskregistrar/internal/rakefile"
	"github.com/kazz187/raketaskregistrar/pkg/cerr"
)

func (c *cli) handleWatch(ctx context.Context, re *runEnv, stdout, stderr io.Writer) int {
	if err := re.requireLocal("watch"); err != nil {
		return fail(ctx, stderr, err)
	}
	script, err := os.Executable()
	if err != nil {
		return fail(ctx, stderr, cerr.NewError(cerr.Internal, "failed to resolve own executable", err))
	}
	root := filepath.Join(re.local.BasePath(), filepath.FromSlash(*c.watchDir))

	w := lens.NewWatcher(root, func(p string) {
		rel, err := re.local.Rel(p)
		if err != nil {
			slog.WarnContext(ctx, "skipping file outside project", "path", p)
			return
		}
		src, err := re.store.Read(ctx, rel)
		if err != nil {
			slog.WarnContext(ctx, "failed to read rake file", "path", rel, "error", err)
			return
		}
		lenses, err := lens.Scan(script, rel, rakefile.SplitLines(src))
		if err != nil {
			slog.WarnContext(ctx, "failed to scan rake file", "path", rel, "error", err)
			return
		}
		if err := printLenses(stdout, lenses, *c.watchFormat); err != nil {
			slog.WarnContext(ctx, "failed to print lenses", "path", rel, "error", err)
		}
	})
	slog.InfoContext(ctx, "watching rake files", "dir", root)
	if err := w.Run(ctx); err != nil {
		return fail(ctx, stderr, err)
	}
	return 0
}
