// Package shell builds and runs the one-line command an editor uses to invoke
// the registrar on a task.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/kazz187/raketaskregistrar/pkg/cerr"
)

// Command returns `<script> register <rakeFile> <taskName>` with every
// argument quoted for bash.
func Command(script, rakeFile, taskName string) (string, error) {
	words := []string{script, "register", rakeFile, taskName}
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		q, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			return "", cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("cannot quote %q for the shell", w), err)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}

// Format reprints a command in canonical bash form.
func Format(cmd string) (string, error) {
	f, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(cmd), "")
	if err != nil {
		return "", fmt.Errorf("failed to parse command: %w", err)
	}
	var b strings.Builder
	if err := syntax.NewPrinter(syntax.Indent(2)).Print(&b, f); err != nil {
		return "", fmt.Errorf("failed to print command: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Run executes cmd in dir with an in-process bash interpreter. A non-zero exit
// status is returned as an interp.ExitStatus error.
func Run(ctx context.Context, dir, cmd string, stdout, stderr io.Writer) error {
	f, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(cmd), "")
	if err != nil {
		return cerr.NewError(cerr.InvalidArgument, "invalid shell command", err)
	}
	runner, err := interp.New(
		interp.Dir(dir),
		interp.StdIO(nil, stdout, stderr),
		interp.Env(nil),
	)
	if err != nil {
		return cerr.NewError(cerr.Internal, "failed to start shell", err)
	}
	return runner.Run(ctx, f)
}

// CheckScript fails with NotFound when the invoked script is missing.
func CheckScript(script string) error {
	if _, err := os.Stat(script); err != nil {
		if os.IsNotExist(err) {
			return cerr.NewError(cerr.NotFound, fmt.Sprintf("Script not found at: %s", script), err)
		}
		return cerr.NewError(cerr.Internal, "failed to stat script", err)
	}
	return nil
}

// LastLine returns the last non-empty line of out, the outcome a user sees.
func LastLine(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(lines[i]); s != "" {
			return s
		}
	}
	return ""
}
