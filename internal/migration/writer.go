package migration

import (
	"regexp"
	"slices"
	"strings"

	"github.com/kazz187/raketaskregistrar/pkg/cerr"
)

var (
	tasksOpenPattern  = regexp.MustCompile(`^\s*tasks\s*=\s*\[`)
	tasksClosePattern = regexp.MustCompile(`^\s*\]\s*$`)
)

// SplitLines splits content into lines that keep their terminators, so that
// strings.Join(lines, "") reproduces content byte for byte.
func SplitLines(content []byte) []string {
	return strings.SplitAfter(string(content), "\n")
}

// Insert returns lines with entries placed right before the line closing the
// tasks array, in order, one element per rendered line. lines is not modified.
// When the array cannot be found it fails with FailedPrecondition.
func Insert(lines []string, entries []Entry) ([]string, error) {
	start := slices.IndexFunc(lines, tasksOpenPattern.MatchString)
	if start < 0 {
		return nil, cerr.NewError(cerr.FailedPrecondition, "could not find 'tasks = [' in migration file", nil)
	}
	end := -1
	for i := start + 1; i < len(lines); i++ {
		if tasksClosePattern.MatchString(lines[i]) {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, cerr.NewError(cerr.FailedPrecondition, "could not find closing ']' for tasks array in migration file", nil)
	}

	var rendered []string
	for _, e := range entries {
		rendered = append(rendered, strings.SplitAfter(strings.TrimSuffix(e.Render(), "\n"), "\n")...)
		rendered[len(rendered)-1] += "\n"
	}
	out := make([]string, 0, len(lines)+len(rendered))
	out = append(out, lines[:end]...)
	out = append(out, rendered...)
	out = append(out, lines[end:]...)
	return out, nil
}
