package registrar

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Report prints the outcome of a run. Editors show its last line to the user,
// so the wording is stable.
func Report(w io.Writer, res *Result, noColor bool) {
	ok := color.New(color.FgGreen)
	info := color.New(color.FgCyan)
	if noColor {
		ok.DisableColor()
		info.DisableColor()
	}

	switch res.Outcome {
	case AlreadyRegistered:
		ok.Fprintln(w, "Task already registered in migration file.")
	case Registered:
		if res.MigrationCreated {
			info.Fprintf(w, "Created migration file: %s\n", res.MigrationPath)
		}
		ok.Fprintf(w, "Task(s) registered in migration file: %s\n", res.MigrationPath)
		for _, cmd := range res.Task.Commands {
			fmt.Fprintf(w, "Task command: %s\n", cmd)
		}
		fmt.Fprintf(w, "Task description: %s\n", res.Task.Description)
	}
}
