package migration

import (
	"fmt"
	"strings"

	"github.com/kazz187/raketaskregistrar/internal/rakefile"
)

// ProvenanceComment marks entries written by this tool.
const ProvenanceComment = "Auto-generated migration"

// Entry is one record of the migration's tasks array.
type Entry struct {
	Command     string
	Description string
	Comment     string
	Nohup       bool
}

// Entries builds one entry per command, all sharing the task's description.
func Entries(task rakefile.Task, commands []string) []Entry {
	entries := make([]Entry, 0, len(commands))
	for _, cmd := range commands {
		entries = append(entries, Entry{
			Command:     cmd,
			Description: task.Description,
			Comment:     ProvenanceComment,
		})
	}
	return entries
}

// Render formats the entry as a Ruby hash literal, indented for the tasks array.
func (e Entry) Render() string {
	return fmt.Sprintf("      {\n"+
		"        rake_command: '%s',\n"+
		"        description:  '%s',\n"+
		"        comment: '%s',\n"+
		"        nohup: %t\n"+
		"      },\n",
		quote(e.Command), quote(e.Description), quote(e.Comment), e.Nohup)
}

var singleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote escapes s for a single-quoted Ruby string.
func quote(s string) string {
	return singleQuoteEscaper.Replace(s)
}
