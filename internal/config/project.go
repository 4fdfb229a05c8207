package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/kazz187/raketaskregistrar/internal/migration"
	"github.com/kazz187/raketaskregistrar/internal/rakefile"
	"github.com/kazz187/raketaskregistrar/pkg/storage"
)

// ProjectFile is read from the project root when present.
const ProjectFile = ".rake-task-registrar.yml"

// Project holds the per-project conventions of the generated migration.
// Values come from the defaults, then ProjectFile, then RAKEREG_* variables.
type Project struct {
	MigrateDir       string `yaml:"migrate_dir" envconfig:"MIGRATE_DIR"`
	Basename         string `yaml:"migration_basename" envconfig:"MIGRATION_BASENAME"`
	ClassName        string `yaml:"migration_class" envconfig:"MIGRATION_CLASS"`
	MigrationVersion string `yaml:"migration_version" envconfig:"MIGRATION_VERSION"`
	PersistenceModel string `yaml:"persistence_model" envconfig:"PERSISTENCE_MODEL"`
	ToolName         string `yaml:"tool_name" envconfig:"TOOL_NAME"`
	Runner           string `yaml:"runner" envconfig:"RUNNER"`
}

func DefaultProject() *Project {
	return &Project{
		MigrateDir:       migration.DefaultDir,
		Basename:         migration.DefaultBasename,
		ClassName:        migration.DefaultClassName,
		MigrationVersion: migration.DefaultMigrationVersion,
		PersistenceModel: migration.DefaultPersistenceModel,
		ToolName:         migration.DefaultToolName,
		Runner:           rakefile.DefaultRunner,
	}
}

// LoadProject builds the project configuration of the tree behind store.
func LoadProject(ctx context.Context, store storage.Storage) (*Project, error) {
	p := DefaultProject()

	data, err := store.Read(ctx, ProjectFile)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", ProjectFile, err)
	default:
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
	}

	if err := envconfig.Process(namespace, p); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) validate() error {
	if p.MigrateDir == "" {
		return errors.New("migrate_dir must not be empty")
	}
	if p.Basename == "" {
		return errors.New("migration_basename must not be empty")
	}
	if p.ClassName == "" {
		return errors.New("migration_class must not be empty")
	}
	if p.PersistenceModel == "" {
		return errors.New("persistence_model must not be empty")
	}
	return nil
}

func (p *Project) Scaffold() migration.Scaffold {
	return migration.Scaffold{
		ToolName:         p.ToolName,
		ClassName:        p.ClassName,
		MigrationVersion: p.MigrationVersion,
		PersistenceModel: p.PersistenceModel,
	}
}

func (p *Project) LocatorOptions() []migration.LocatorOption {
	return []migration.LocatorOption{
		migration.WithDir(p.MigrateDir),
		migration.WithBasename(p.Basename),
		migration.WithScaffold(p.Scaffold()),
	}
}
