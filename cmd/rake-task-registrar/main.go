package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"

	"github.com/kazz187/raketaskregistrar/internal/registrar"
)

type cli struct {
	app        *kingpin.Application
	projectDir *string
	noColor    *bool

	registerCmd      *kingpin.CmdClause
	registerRakeFile *string
	registerTaskName *string
	registerDryRun   *bool
	registerDiff     *bool

	lensesCmd      *kingpin.CmdClause
	lensesRakeFile *string
	lensesFormat   *string

	invokeCmd      *kingpin.CmdClause
	invokeRakeFile *string
	invokeTaskName *string
	invokePrint    *bool

	watchCmd    *kingpin.CmdClause
	watchDir    *string
	watchFormat *string
}

func newCLI() *cli {
	c := &cli{}
	c.app = kingpin.New("rake-task-registrar", "Records rake tasks into a generated migration that registers production rake tasks")
	c.projectDir = c.app.Flag("project-dir", "Project root containing db/migrate and lib/tasks").Envar("RAKEREG_PROJECT_DIR").String()
	c.noColor = c.app.Flag("no-color", "Disable colored output").Bool()

	// register is the default command, so `rake-task-registrar <rake_file> <task_name>` works.
	c.registerCmd = c.app.Command("register", "Register a rake task in the generic migration").Default()
	c.registerRakeFile = c.registerCmd.Arg("rake_file", "Path to the .rake file").String()
	c.registerTaskName = c.registerCmd.Arg("task_name", "Name of the task to register").String()
	c.registerDryRun = c.registerCmd.Flag("dry-run", "Show the change without writing anything").Bool()
	c.registerDiff = c.registerCmd.Flag("diff", "Print a unified diff of the migration change").Bool()

	c.lensesCmd = c.app.Command("lenses", "List the register actions an editor offers for a rake file")
	c.lensesRakeFile = c.lensesCmd.Arg("rake_file", "Path to the .rake file").Required().String()
	c.lensesFormat = c.lensesCmd.Flag("format", "Output format").Default("text").Enum("text", "yaml")

	c.invokeCmd = c.app.Command("invoke", "Run the register command through a shell, as an editor does")
	c.invokeRakeFile = c.invokeCmd.Arg("rake_file", "Path to the .rake file").Required().String()
	c.invokeTaskName = c.invokeCmd.Arg("task_name", "Name of the task to register").Required().String()
	c.invokePrint = c.invokeCmd.Flag("print", "Only print the shell command").Bool()

	c.watchCmd = c.app.Command("watch", "Print register actions whenever a rake file changes")
	c.watchDir = c.watchCmd.Arg("dir", "Directory to watch, relative to the project root").Default("lib/tasks").String()
	c.watchFormat = c.watchCmd.Flag("format", "Output format").Default("text").Enum("text", "yaml")
	return c
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	c := newCLI()
	c.app.UsageWriter(stderr)
	c.app.ErrorWriter(stderr)
	command, err := c.app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if *c.noColor {
		color.NoColor = true
	}
	if command == c.registerCmd.FullCommand() {
		req := registrar.Request{RakeFile: *c.registerRakeFile, TaskName: *c.registerTaskName}
		if err := req.Validate(); err != nil {
			return fail(context.Background(), stderr, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	re, err := c.setup(ctx, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	switch command {
	case c.registerCmd.FullCommand():
		return c.handleRegister(re.ctx, re, stdout, stderr)
	case c.lensesCmd.FullCommand():
		return c.handleLenses(re.ctx, re, stdout, stderr)
	case c.invokeCmd.FullCommand():
		return c.handleInvoke(re.ctx, re, stdout, stderr)
	case c.watchCmd.FullCommand():
		return c.handleWatch(re.ctx, re, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		return 2
	}
}
