package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/joeycumines/resumebt/internal/config"
)

// Registry holds the available commands, by name.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// NewDefaultRegistry returns a registry of every resumebt command.
func NewDefaultRegistry(cfg *config.Config, configPath, version string) *Registry {
	r := NewRegistry()
	r.Register(NewHelpCommand(r))
	r.Register(NewVersionCommand(version))
	r.Register(NewConfigCommand(cfg, configPath))
	r.Register(NewRunCommand(cfg))
	r.Register(NewDumpCommand(cfg))
	r.Register(NewStepCommand(cfg))
	return r
}

// Register adds cmd, replacing any command of the same name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get returns the command called name.
func (r *Registry) Get(name string) (Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("command not found: %s", name)
}

// List returns the sorted command names.
func (r *Registry) List() []string {
	return slices.Sorted(maps.Keys(r.commands))
}

// Dispatch runs the command named by args[0], with the rest of args parsed
// by its flag set. No arguments, or -h / --help, runs "help".
func (r *Registry) Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		args = []string{"help"}
	}

	cmd, err := r.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		_, _ = fmt.Fprintln(stderr, "Use 'resumebt help' to see available commands.")
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: resumebt %s\n\n%s\n\nOptions:\n", cmd.Usage(), cmd.Description())
		fs.PrintDefaults()
	}
	cmd.SetupFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return cmd.Execute(ctx, fs.Args(), stdout, stderr)
}
