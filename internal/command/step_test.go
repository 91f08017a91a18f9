package command

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeycumines/resumebt/internal/config"
)

func TestStepCommand_requiresTerminal(t *testing.T) {
	t.Parallel()

	cmd := NewStepCommand(config.NewConfig())
	cmd.input = strings.NewReader("q")

	var stdout, stderr bytes.Buffer
	err := cmd.Execute(context.Background(), []string{"tree.js"}, &stdout, &stderr)
	require.ErrorIs(t, err, ErrNotTerminal)
	require.Empty(t, stdout.String())

	require.ErrorIs(t, cmd.Execute(context.Background(), nil, &stdout, &stderr), ErrUsage)
	require.Equal(t, "Usage: resumebt step [options] <script.js>\n", stderr.String())
}
