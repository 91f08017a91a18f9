package command

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/joeycumines/resumebt"
	"github.com/joeycumines/resumebt/internal/config"
)

// DumpCommand prints the structure of a scripted tree.
type DumpCommand struct {
	*BaseCommand
	config *config.Config
	flags  treeFlags
	color  string
}

func NewDumpCommand(cfg *config.Config) *DumpCommand {
	return &DumpCommand{
		BaseCommand: NewBaseCommand("dump", "Print the structure of a scripted tree", "dump [options] <script.js>"),
		config:      cfg,
	}
}

func (c *DumpCommand) SetupFlags(fs *flag.FlagSet) {
	c.flags.setup(fs)
	fs.StringVar(&c.color, "color", "", "Color mode: auto, always, never (default from config)")
}

func (c *DumpCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if err := requireScript(c, args, stderr); err != nil {
		return err
	}

	s, err := openSession(c.config, c.Name(), c.flags, args[0], stderr)
	if err != nil {
		return err
	}
	defer s.close()

	mode := c.color
	if mode == "" {
		mode = s.settings.Color
	}
	dump := resumebt.Sprint(s.root)
	if useColor(mode, stdout) {
		dump = newDumpStyles(stdout).render(dump)
	}
	_, err = io.WriteString(stdout, dump)
	return err
}

// useColor reports whether output to w should be styled. Auto enables color
// for terminals, unless NO_COLOR is set.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type dumpStyles struct {
	branch lipgloss.Style
	label  lipgloss.Style
	name   lipgloss.Style
}

func newDumpStyles(w io.Writer) dumpStyles {
	r := lipgloss.NewRenderer(w)
	// color was decided by the caller, regardless of what w looks like
	r.SetColorProfile(termenv.ANSI256)
	return dumpStyles{
		branch: r.NewStyle().Foreground(lipgloss.Color("240")),
		label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		name:   r.NewStyle().Foreground(lipgloss.Color("212")),
	}
}

// render styles each line of a dump: the tree drawing, the node label, and
// any trailing <name> from an observed node.
func (s dumpStyles) render(dump string) string {
	var b strings.Builder
	for line := range strings.Lines(dump) {
		line = strings.TrimSuffix(line, "\n")
		i := strings.IndexFunc(line, func(r rune) bool { return !strings.ContainsRune("│├└─ ", r) })
		if i < 0 {
			i = len(line)
		}
		branch, label := line[:i], line[i:]
		if branch != "" {
			b.WriteString(s.branch.Render(branch))
		}
		name := ""
		if j := strings.LastIndex(label, " <"); j >= 0 && strings.HasSuffix(label, ">") {
			label, name = label[:j], label[j:]
		}
		if label != "" {
			b.WriteString(s.label.Render(label))
		}
		if name != "" {
			b.WriteString(s.name.Render(name))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
