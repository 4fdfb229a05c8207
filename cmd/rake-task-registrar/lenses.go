package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/raketaskregistrar/internal/lens"
	"github.com/kazz187/raketaskregistrar/internal/rakefile"
	"github.com/kazz187/raketaskregistrar/pkg/cerr"
)

func (c *cli) handleLenses(ctx context.Context, re *runEnv, stdout, stderr io.Writer) int {
	rakeFile, err := re.relPath(*c.lensesRakeFile)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	src, err := re.store.Read(ctx, rakeFile)
	if err != nil {
		return fail(ctx, stderr, cerr.WrapStorageReadError("rake file", err))
	}
	script, err := os.Executable()
	if err != nil {
		return fail(ctx, stderr, cerr.NewError(cerr.Internal, "failed to resolve own executable", err))
	}

	lenses, err := lens.Scan(script, rakeFile, rakefile.SplitLines(src))
	if err != nil {
		return fail(ctx, stderr, err)
	}
	if err := printLenses(stdout, lenses, *c.lensesFormat); err != nil {
		return fail(ctx, stderr, err)
	}
	return 0
}

func printLenses(w io.Writer, lenses []lens.Lens, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(lenses); err != nil {
			return fmt.Errorf("failed to encode lenses: %w", err)
		}
		return enc.Close()
	}
	for _, l := range lenses {
		fmt.Fprintf(w, "%s:%d\t%s\t%s\n", l.File, l.Line+1, l.Task, l.Command)
	}
	return nil
}
