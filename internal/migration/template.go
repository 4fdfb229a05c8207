package migration

import (
	"bytes"
	"fmt"
	"text/template"
)

const (
	DefaultDir              = "db/migrate"
	DefaultBasename         = "add_rake_tasks_for_new_tasks.rb"
	DefaultClassName        = "AddRakeTasksForNewTasks"
	DefaultMigrationVersion = "6.1"
	DefaultPersistenceModel = "ProductionRakeTask"
	DefaultToolName         = "the RakeTaskRegistrar"
)

// Scaffold holds the substitutions of a new migration file.
type Scaffold struct {
	ToolName         string
	ClassName        string
	MigrationVersion string
	PersistenceModel string
}

func DefaultScaffold() Scaffold {
	return Scaffold{
		ToolName:         DefaultToolName,
		ClassName:        DefaultClassName,
		MigrationVersion: DefaultMigrationVersion,
		PersistenceModel: DefaultPersistenceModel,
	}
}

var scaffoldTemplate = template.Must(template.New("migration").Parse(`# This File is generated using {{.ToolName}}.
# What you need to do manually is listed below:
# 1- Rename the file as you need
# 2- Adjust the guard clause
# 3- Adjust the nohup parameter

class {{.ClassName}}{{if .MigrationVersion}} < ActiveRecord::Migration[{{.MigrationVersion}}]{{end}}
  def change
    tasks = [
    ]
    tasks.each do |task|
      {{.PersistenceModel}}.create(task)
    end
  end
end
`))

// Render returns the boilerplate of an empty migration.
func (s Scaffold) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := scaffoldTemplate.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("failed to render migration template: %w", err)
	}
	return buf.Bytes(), nil
}
