// Package rakefile finds task declarations in rake files and derives the
// commands and description a migration entry is built from.
//
// It is a line scanner, not a Ruby parser: it only understands task headers,
// `desc` statements and comment lines.
package rakefile

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// DefaultDescription is used when no desc statement precedes the task.
	DefaultDescription = "No description"
	// DefaultRunner prefixes the synthesized fallback command.
	DefaultRunner = "bundle"
	// LookBack is how many lines above a task header are searched for commands.
	LookBack = 5

	runnerKeyword = "rake"
)

// Task is what the registrar records about one rake task.
type Task struct {
	Name        string
	Description string
	// Commands is never empty after Extract.
	Commands []string
}

type options struct {
	runner string
}

type Option func(*options)

// WithRunner sets the command prefix of the fallback command (default "bundle").
func WithRunner(runner string) Option {
	return func(o *options) {
		if runner != "" {
			o.runner = runner
		}
	}
}

var (
	descPattern          = regexp.MustCompile(`^desc\s+`)
	commentMarkerPattern = regexp.MustCompile(`^#\s*`)
)

// Extract scans lines for the header of taskName and returns its record.
//
// The last desc statement seen before the header becomes the description.
// Comments mentioning rake within LookBack lines above the header become the
// commands, in source order. Without any, a single
// "<runner> exec rake <file>:<task>" command is synthesized.
func Extract(lines []string, rakeFile, taskName string, opts ...Option) Task {
	o := options{runner: DefaultRunner}
	for _, opt := range opts {
		opt(&o)
	}

	header := headerPattern(taskName)
	var (
		desc     string
		hasDesc  bool
		commands []string
	)
	for idx, line := range lines {
		if d, ok := parseDesc(line); ok {
			desc, hasDesc = d, true
			continue
		}
		if !header.MatchString(line) {
			continue
		}
		for offset := 1; offset <= LookBack; offset++ {
			if idx-offset < 0 {
				break
			}
			if cmd, ok := parseCommandComment(lines[idx-offset]); ok {
				commands = append([]string{cmd}, commands...)
			}
		}
		break
	}

	if len(commands) == 0 {
		commands = []string{DefaultCommand(o.runner, rakeFile, taskName)}
	}
	if !hasDesc {
		desc = DefaultDescription
	}
	return Task{
		Name:        taskName,
		Description: desc,
		Commands:    commands,
	}
}

// DefaultCommand builds the canonical invocation of a task.
func DefaultCommand(runner, rakeFile, taskName string) string {
	base := strings.TrimSuffix(filepath.Base(rakeFile), filepath.Ext(rakeFile))
	return runner + " exec rake " + base + ":" + taskName
}

func parseDesc(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	loc := descPattern.FindStringIndex(trimmed)
	if loc == nil {
		return "", false
	}
	return trimOneQuote(trimmed[loc[1]:]), true
}

func trimOneQuote(s string) string {
	if strings.HasPrefix(s, `'`) || strings.HasPrefix(s, `"`) {
		s = s[1:]
	}
	if strings.HasSuffix(s, `'`) || strings.HasSuffix(s, `"`) {
		s = s[:len(s)-1]
	}
	return s
}

func parseCommandComment(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") || !strings.Contains(line, runnerKeyword) {
		return "", false
	}
	return commentMarkerPattern.ReplaceAllString(trimmed, ""), true
}
