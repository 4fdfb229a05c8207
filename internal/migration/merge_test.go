package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kazz187/raketaskregistrar/internal/rakefile"
)

func TestNewCommands(t *testing.T) {
	task := rakefile.Task{
		Name:        "cleanup",
		Description: "Cleans up",
		Commands:    []string{"rake deploy:prepare", "RAILS_ENV=production rake deploy:purge"},
	}

	t.Run("empty migration keeps all commands in order", func(t *testing.T) {
		assert.Equal(t, task.Commands, NewCommands(emptyMigration, task))
	})

	t.Run("registered command is skipped", func(t *testing.T) {
		content := emptyMigration + "# rake deploy:prepare\n"
		assert.Equal(t, []string{"RAILS_ENV=production rake deploy:purge"}, NewCommands(content, task))
	})

	t.Run("task name anywhere skips everything", func(t *testing.T) {
		content := emptyMigration + "# bundle exec rake deploy:cleanup_old\n"
		assert.Empty(t, NewCommands(content, task))
	})
}

func TestNewCommandsMatchesEscapedForm(t *testing.T) {
	task := rakefile.Task{
		Name:     "greet",
		Commands: []string{`rake hello['world']`},
	}
	content := emptyMigration + Entry{Command: task.Commands[0], Comment: ProvenanceComment}.Render()
	// the name check alone must not be what skips the command
	assert.NotContains(t, emptyMigration, task.Name)
	assert.Empty(t, NewCommands(content, task))
}

func TestEntries(t *testing.T) {
	task := rakefile.Task{Name: "cleanup", Description: "Cleans up"}
	got := Entries(task, []string{"a", "b"})
	assert.Equal(t, []Entry{
		{Command: "a", Description: "Cleans up", Comment: ProvenanceComment},
		{Command: "b", Description: "Cleans up", Comment: ProvenanceComment},
	}, got)
}

func TestEntryRender(t *testing.T) {
	e := Entry{Command: "rake deploy:cleanup", Description: "No description", Comment: ProvenanceComment}
	assert.Equal(t, `      {
        rake_command: 'rake deploy:cleanup',
        description:  'No description',
        comment: 'Auto-generated migration',
        nohup: false
      },
`, e.Render())

	e = Entry{Command: `rake say['hi']`, Description: `back\slash`, Comment: ProvenanceComment}
	assert.Contains(t, e.Render(), `rake_command: 'rake say[\'hi\']',`)
	assert.Contains(t, e.Render(), `description:  'back\\slash',`)
}
