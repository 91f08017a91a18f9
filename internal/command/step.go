package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/joeycumines/resumebt/internal/config"
	"github.com/joeycumines/resumebt/internal/tui"
)

// ErrNotTerminal indicates an interactive command was run without a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// StepCommand steps through a scripted tree interactively.
type StepCommand struct {
	*BaseCommand
	config *config.Config
	flags  treeFlags
	input  io.Reader
}

func NewStepCommand(cfg *config.Config) *StepCommand {
	return &StepCommand{
		BaseCommand: NewBaseCommand("step", "Step through a scripted tree, one tick per key press", "step [options] <script.js>"),
		config:      cfg,
		input:       os.Stdin,
	}
}

func (c *StepCommand) SetupFlags(fs *flag.FlagSet) {
	c.flags.setup(fs)
}

func (c *StepCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := requireScript(c, args, stderr); err != nil {
		return err
	}
	if f, ok := c.input.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("step: stdin is %w", ErrNotTerminal)
	}

	// logs would draw over the TUI
	if c.flags.logFile == "" {
		stderr = io.Discard
	}
	s, err := openSession(c.config, c.Name(), c.flags, args[0], stderr)
	if err != nil {
		return err
	}
	defer s.close()

	model := tui.New(filepath.Base(args[0]), s.root, s.engine.Blackboard())
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(c.input), tea.WithOutput(stdout), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("step: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		_, _ = fmt.Fprintf(stdout, "%s after %d ticks\n", m.Status(), m.Ticks())
	}
	return nil
}
