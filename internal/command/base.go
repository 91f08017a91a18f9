// Package command implements the resumebt subcommands.
package command

import (
	"context"
	"errors"
	"flag"
	"io"
)

// ErrUsage indicates a command was invoked with invalid arguments. The
// command will already have described the problem on stderr.
var ErrUsage = errors.New("usage error")

// Command is a subcommand of the resumebt binary.
type Command interface {
	Name() string
	Description() string
	Usage() string

	// SetupFlags registers the command's flags on fs, which is parsed before
	// Execute is called.
	SetupFlags(fs *flag.FlagSet)

	// Execute runs the command with the positional arguments left after
	// flag parsing.
	Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

// BaseCommand implements the descriptive half of Command, for embedding.
type BaseCommand struct {
	name        string
	description string
	usage       string
}

func NewBaseCommand(name, description, usage string) *BaseCommand {
	return &BaseCommand{name: name, description: description, usage: usage}
}

func (c *BaseCommand) Name() string        { return c.name }
func (c *BaseCommand) Description() string { return c.description }
func (c *BaseCommand) Usage() string       { return c.usage }

// SetupFlags registers nothing.
func (c *BaseCommand) SetupFlags(*flag.FlagSet) {}
