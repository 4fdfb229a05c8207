package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"mvdan.cc/sh/v3/interp"

	"github.com/kazz187/raketaskregistrar/internal/shell"
	"github.com/kazz187/raketaskregistrar/pkg/cerr"
)

func (c *cli) handleInvoke(ctx context.Context, re *runEnv, stdout, stderr io.Writer) int {
	if err := re.requireLocal("invoke"); err != nil {
		return fail(ctx, stderr, err)
	}
	script, err := os.Executable()
	if err != nil {
		return fail(ctx, stderr, cerr.NewError(cerr.Internal, "failed to resolve own executable", err))
	}
	if err := shell.CheckScript(script); err != nil {
		return fail(ctx, stderr, err)
	}
	rakeFile, err := re.relPath(*c.invokeRakeFile)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	ok, err := re.store.Exists(ctx, rakeFile)
	if err != nil {
		return fail(ctx, stderr, cerr.WrapStorageReadError("rake file", err))
	}
	if !ok {
		return fail(ctx, stderr, cerr.NewError(cerr.NotFound, fmt.Sprintf("Rake file not found at: %s", rakeFile), nil))
	}

	cmd, err := shell.Command(script, rakeFile, *c.invokeTaskName)
	if err != nil {
		return fail(ctx, stderr, err)
	}
	if *c.invokePrint {
		formatted, err := shell.Format(cmd)
		if err != nil {
			return fail(ctx, stderr, err)
		}
		fmt.Fprintln(stdout, formatted)
		return 0
	}

	slog.InfoContext(ctx, "registering rake task", "command", cmd)
	var out bytes.Buffer
	err = shell.Run(ctx, re.local.BasePath(), cmd, &out, stderr)
	slog.DebugContext(ctx, "register output", "output", out.String())
	if line := shell.LastLine(out.String()); line != "" {
		color.New(color.FgGreen).Fprintln(stdout, line)
	}

	var status interp.ExitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	if err != nil {
		return fail(ctx, stderr, err)
	}
	return 0
}
