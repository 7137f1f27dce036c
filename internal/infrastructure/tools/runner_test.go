package tools

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/investigator-go/internal/pkg/logger"
	"github.com/doeshing/investigator-go/internal/ports"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunCapturesStdout(t *testing.T) {
	requireUnix(t)
	r := NewLocalRunner(logger.NewNop())

	res := r.Run(context.Background(), ports.ToolInvocation{Name: "sh", Args: []string{"-c", "echo hello; echo warn >&2"}})

	require.NoError(t, res.Err)
	assert.Equal(t, "hello\n", res.Output)
	assert.Zero(t, res.ExitCode)
}

func TestRunFallsBackToStderr(t *testing.T) {
	requireUnix(t)
	r := NewLocalRunner(nil)

	res := r.Run(context.Background(), ports.ToolInvocation{Name: "sh", Args: []string{"-c", "echo boom >&2; exit 3"}})

	assert.Equal(t, "boom\n", res.Output)
	assert.Equal(t, 3, res.ExitCode)
	assert.Error(t, res.Err)
	assert.False(t, res.TimedOut)
}

func TestRunNotFound(t *testing.T) {
	r := NewLocalRunner(nil)

	res := r.Run(context.Background(), ports.ToolInvocation{Name: "investigator-no-such-tool"})

	assert.True(t, res.NotFound)
	assert.Error(t, res.Err)
}

func TestRunTimeout(t *testing.T) {
	requireUnix(t)
	r := NewLocalRunner(nil)

	res := r.Run(context.Background(), ports.ToolInvocation{
		Name:    "sleep",
		Args:    []string{"5"},
		Timeout: 100 * time.Millisecond,
	})

	assert.True(t, res.TimedOut)
	assert.Less(t, res.Duration, 4*time.Second)
}

func TestAvailable(t *testing.T) {
	r := &LocalRunner{lookPath: func(name string) (string, error) { return "/opt/bin/" + name, nil }}

	path, ok := r.Available("nmap")

	assert.True(t, ok)
	assert.Equal(t, "/opt/bin/nmap", path)
}
