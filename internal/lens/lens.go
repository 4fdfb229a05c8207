// Package lens offers editors a "register this task" action for every task
// header of a rake file, and keeps those actions fresh while files change.
package lens

import (
	"github.com/kazz187/raketaskregistrar/internal/rakefile"
	"github.com/kazz187/raketaskregistrar/internal/shell"
)

const Title = "Register Rake Task in Migration"

// Lens is one action anchored on a task header.
type Lens struct {
	File    string `yaml:"file"`
	Line    int    `yaml:"line"`
	Task    string `yaml:"task"`
	Title   string `yaml:"title"`
	Command string `yaml:"command"`
}

// Scan returns a lens per task header of a file. script is the registrar
// executable the lens command invokes; file should be project relative.
func Scan(script, file string, lines []string) ([]Lens, error) {
	headers := rakefile.FindHeaders(lines)
	lenses := make([]Lens, 0, len(headers))
	for _, h := range headers {
		cmd, err := shell.Command(script, file, h.Name)
		if err != nil {
			return nil, err
		}
		lenses = append(lenses, Lens{
			File:    file,
			Line:    h.Line,
			Task:    h.Name,
			Title:   Title,
			Command: cmd,
		})
	}
	return lenses, nil
}
