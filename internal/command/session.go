package command

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joeycumines/resumebt/internal/condition"
	"github.com/joeycumines/resumebt/internal/config"
	"github.com/joeycumines/resumebt/internal/observe"
	"github.com/joeycumines/resumebt/internal/script"
)

// treeFlags are the flags shared by commands that load a script.
type treeFlags struct {
	logLevel string
	logFile  string
}

func (f *treeFlags) setup(fs *flag.FlagSet) {
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	fs.StringVar(&f.logFile, "log-file", "", "Append logs to this file instead of stderr (default from config)")
}

// session is a loaded script, and everything it runs with.
type session struct {
	settings config.Settings
	logs     logConfig
	logger   *slog.Logger
	metrics  *prometheus.Registry
	observer *observe.Observer
	engine   *script.Engine
	root     script.Node
}

// openSession resolves settings for command, then loads the tree built by
// the script at path, installing the session's logger as the slog default.
// The session must be closed.
func openSession(cfg *config.Config, command string, flags treeFlags, path string, stderr io.Writer) (*session, error) {
	settings, settingsErr := config.DefaultSchema().Settings(cfg, command)

	logs, err := resolveLogConfig(flags.logLevel, flags.logFile, settings)
	if err != nil {
		return nil, err
	}
	s := &session{settings: settings, logs: logs, logger: logs.logger(stderr), metrics: prometheus.NewRegistry()}
	slog.SetDefault(s.logger)
	if settingsErr != nil {
		s.logger.Warn("[Command] using defaults", "error", settingsErr)
	}

	condition.SetCacheSize(settings.ExprCacheSize)

	s.observer, err = observe.New(s.metrics, s.logger)
	if err != nil {
		s.logs.close()
		return nil, err
	}

	s.engine = script.New(script.WithObserver(s.observer))
	s.root, err = s.engine.LoadFile(path)
	if err != nil {
		s.close()
		return nil, err
	}

	s.logger.Debug("[Command] loaded tree", "path", path, "run_id", s.observer.RunID())
	return s, nil
}

func (s *session) close() {
	s.engine.Close()
	s.logs.close()
}

// requireScript checks args is a single script path.
func requireScript(cmd Command, args []string, stderr io.Writer) error {
	if len(args) != 1 {
		_, _ = fmt.Fprintf(stderr, "Usage: resumebt %s\n", cmd.Usage())
		return ErrUsage
	}
	return nil
}
