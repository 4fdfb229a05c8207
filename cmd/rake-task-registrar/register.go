package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kazz187/raketaskregistrar/internal/migration"
	"github.com/kazz187/raketaskregistrar/internal/registrar"
)

func (c *cli) handleRegister(ctx context.Context, re *runEnv, stdout, stderr io.Writer) int {
	rakeFile, err := re.relPath(*c.registerRakeFile)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	locator := migration.NewLocator(re.store, re.project.LocatorOptions()...)
	r := registrar.New(re.store, locator, registrar.WithRunner(re.project.Runner))

	res, err := r.Register(ctx, registrar.Request{
		RakeFile: rakeFile,
		TaskName: *c.registerTaskName,
		DryRun:   *c.registerDryRun,
	})
	if err != nil {
		return fail(ctx, stderr, err)
	}

	registrar.Report(stdout, res, color.NoColor)
	if (*c.registerDiff || *c.registerDryRun) && res.Diff != "" {
		fmt.Fprint(stdout, res.Diff)
	}
	return 0
}
