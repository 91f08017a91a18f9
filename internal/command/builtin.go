package command

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/joeycumines/resumebt/internal/config"
)

// HelpCommand lists commands, or describes one.
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand("help", "Display help information for commands", "help [command]"),
		registry:    registry,
	}
}

func (c *HelpCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, "resumebt - run resumable behavior trees")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Usage: resumebt <command> [options] [args...]")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Commands:")
		w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
		for _, name := range c.registry.List() {
			if cmd, err := c.registry.Get(name); err == nil {
				_, _ = fmt.Fprintf(w, "  %s\t%s\n", name, cmd.Description())
			}
		}
		_ = w.Flush()
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Use 'resumebt help <command>' for more information about a command.")
		return nil
	}

	cmd, err := c.registry.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	_, _ = fmt.Fprintf(stdout, "Command: %s\n", cmd.Name())
	_, _ = fmt.Fprintf(stdout, "Description: %s\n", cmd.Description())
	_, _ = fmt.Fprintf(stdout, "Usage: resumebt %s\n", cmd.Usage())

	// flags are only known once registered on a flag set
	var buf bytes.Buffer
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(&buf)
	cmd.SetupFlags(fs)
	fs.PrintDefaults()
	if buf.Len() > 0 {
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Flags:")
		_, _ = fmt.Fprint(stdout, buf.String())
	}
	return nil
}

// VersionCommand prints the version.
type VersionCommand struct {
	*BaseCommand
	version string
}

func NewVersionCommand(version string) *VersionCommand {
	return &VersionCommand{
		BaseCommand: NewBaseCommand("version", "Display version information", "version"),
		version:     version,
	}
}

func (c *VersionCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return ErrUsage
	}
	_, _ = fmt.Fprintf(stdout, "resumebt version %s\n", c.version)
	return nil
}

// ConfigCommand shows, validates and sets options.
type ConfigCommand struct {
	*BaseCommand
	config     *config.Config
	configPath string
	schema     *config.ConfigSchema
	section    string
}

// NewConfigCommand returns a config command over cfg. Values that are set
// are written to configPath, unless it is empty.
func NewConfigCommand(cfg *config.Config, configPath string) *ConfigCommand {
	return &ConfigCommand{
		BaseCommand: NewBaseCommand(
			"config",
			"Show, validate, or set configuration options",
			"config [options] [validate | schema | <key> [value]]",
		),
		config:     cfg,
		configPath: configPath,
		schema:     config.DefaultSchema(),
	}
}

func (c *ConfigCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.section, "command", "", "Resolve options as seen by this command's section")
}

func (c *ConfigCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	switch {
	case len(args) == 0:
		w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
		for _, opt := range c.schema.Options() {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", opt.Key, c.schema.Resolve(c.config, c.section, opt.Key))
		}
		return w.Flush()

	case args[0] == "validate" && len(args) == 1:
		issues := config.ValidateConfig(c.config, c.schema)
		if len(issues) == 0 {
			_, _ = fmt.Fprintln(stdout, "Configuration is valid.")
			return nil
		}
		_, _ = fmt.Fprintf(stdout, "Configuration has %d issue(s):\n", len(issues))
		for _, issue := range issues {
			_, _ = fmt.Fprintf(stdout, "  - %s\n", issue)
		}
		return nil

	case args[0] == "schema" && len(args) == 1:
		_, _ = fmt.Fprint(stdout, c.schema.FormatHelp())
		return nil

	case len(args) == 1:
		if c.schema.Lookup(args[0]) == nil {
			_, _ = fmt.Fprintf(stderr, "Unknown option: %s\n", args[0])
			return ErrUsage
		}
		_, _ = fmt.Fprintf(stdout, "%s: %s\n", args[0], c.schema.Resolve(c.config, c.section, args[0]))
		return nil

	case len(args) == 2:
		key, value := args[0], args[1]
		if err := c.schema.Validate(key, value); err != nil {
			_, _ = fmt.Fprintf(stderr, "Invalid value: %v\n", err)
			return ErrUsage
		}
		c.config.SetGlobalOption(key, value)
		if c.configPath != "" {
			if err := config.SetKeyInFile(c.configPath, key, value); err != nil {
				return fmt.Errorf("failed to persist config: %w", err)
			}
		}
		_, _ = fmt.Fprintf(stdout, "Set configuration: %s = %s\n", key, value)
		return nil
	}

	_, _ = fmt.Fprintln(stderr, "Invalid number of arguments")
	return ErrUsage
}
