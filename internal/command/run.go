package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/common/expfmt"

	"github.com/joeycumines/resumebt"
	"github.com/joeycumines/resumebt/internal/config"
	"github.com/joeycumines/resumebt/interop"
)

// ErrTreeFailed indicates the tree completed with Failure.
var ErrTreeFailed = errors.New("tree failed")

// RunCommand ticks a scripted tree until it completes.
type RunCommand struct {
	*BaseCommand
	config *config.Config
	flags  treeFlags

	maxTicks       int
	interval       time.Duration
	showMetrics    bool
	showBlackboard bool
}

func NewRunCommand(cfg *config.Config) *RunCommand {
	return &RunCommand{
		BaseCommand: NewBaseCommand("run", "Tick a scripted tree until it completes", "run [options] <script.js>"),
		config:      cfg,
	}
}

func (c *RunCommand) SetupFlags(fs *flag.FlagSet) {
	c.flags.setup(fs)
	fs.IntVar(&c.maxTicks, "max-ticks", -1, "Give up after this many ticks, 0 for no limit (default from config)")
	fs.DurationVar(&c.interval, "interval", -1, "Delay between ticks, 0 to tick back to back (default from config)")
	fs.BoolVar(&c.showMetrics, "metrics", false, "Print tick counters when done")
	fs.BoolVar(&c.showBlackboard, "blackboard", false, "Print the blackboard when done")
}

func (c *RunCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := requireScript(c, args, stderr); err != nil {
		return err
	}

	s, err := openSession(c.config, c.Name(), c.flags, args[0], stderr)
	if err != nil {
		return err
	}
	defer s.close()

	maxTicks := c.maxTicks
	if maxTicks < 0 {
		maxTicks = s.settings.MaxTicks
	}
	interval := c.interval
	if interval < 0 {
		interval = s.settings.Interval
	}

	runner := resumebt.NewRunner(s.root)
	bb := s.engine.Blackboard()

	var result interop.Result
	if interval > 0 {
		result, err = interop.Run(ctx, interval, maxTicks, runner, bb)
	} else {
		result, err = runBackToBack(ctx, maxTicks, runner, bb)
	}

	// reported even for an abandoned run
	if c.showBlackboard {
		for _, key := range bb.Keys() {
			_, _ = fmt.Fprintf(stdout, "%s = %v\n", key, bb.Get(key))
		}
	}
	if c.showMetrics {
		if err := writeMetrics(stdout, s); err != nil {
			return err
		}
	}

	if err != nil {
		s.logger.Error("[Run] tree abandoned", "ticks", result.Ticks, "error", err)
		return err
	}

	s.logger.Info("[Run] tree completed", "success", result.Success, "ticks", result.Ticks)
	if !result.Success {
		_, _ = fmt.Fprintf(stdout, "failure after %d ticks\n", result.Ticks)
		return ErrTreeFailed
	}
	_, _ = fmt.Fprintf(stdout, "success after %d ticks\n", result.Ticks)
	return nil
}

// runBackToBack proceeds runner until it completes, with no delay between
// ticks, checking ctx between each.
func runBackToBack[B any](ctx context.Context, maxTicks int, runner *resumebt.Runner[B], bb *B) (interop.Result, error) {
	var result interop.Result
	for {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run stopped after %d ticks: %w", result.Ticks, err)
		}
		result.Ticks++
		success, done := runner.Proceed(bb)
		if done {
			result.Success = success
			return result, nil
		}
		if maxTicks > 0 && result.Ticks >= maxTicks {
			return result, fmt.Errorf("run stopped after %d ticks: %w", result.Ticks, interop.ErrTickLimit)
		}
	}
}

func writeMetrics(w io.Writer, s *session) error {
	families, err := s.metrics.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
