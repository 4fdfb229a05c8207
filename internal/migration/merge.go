package migration

import (
	"strings"

	"github.com/kazz187/raketaskregistrar/internal/rakefile"
)

// NewCommands returns the commands of task that the migration does not know yet.
//
// A command counts as registered when the migration text contains it, or when
// it contains the task name anywhere. The name check is deliberately coarse: a
// task that has any entry, even under an edited command, is never registered
// again.
func NewCommands(content string, task rakefile.Task) []string {
	if task.Name != "" && strings.Contains(content, task.Name) {
		return nil
	}
	var commands []string
	for _, cmd := range task.Commands {
		if strings.Contains(content, cmd) || strings.Contains(content, quote(cmd)) {
			continue
		}
		commands = append(commands, cmd)
	}
	return commands
}
