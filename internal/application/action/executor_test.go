package action

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/investigator-go/internal/application/intent"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/infrastructure/security"
	"github.com/doeshing/investigator-go/internal/ports"
)

type fakeRunner struct {
	results map[string]ports.ToolResult
	calls   []ports.ToolInvocation
}

func (r *fakeRunner) Run(_ context.Context, inv ports.ToolInvocation) ports.ToolResult {
	r.calls = append(r.calls, inv)
	if res, ok := r.results[inv.Name]; ok {
		return res
	}
	return ports.ToolResult{Output: inv.Name + " ok"}
}

type fakeLogs struct {
	entries []domain.ExecutionLog
	err     error
}

func (l *fakeLogs) Write(entry domain.ExecutionLog) (string, error) {
	if l.err != nil {
		return "", l.err
	}
	l.entries = append(l.entries, entry)
	return "/logs/" + string(entry.Action) + "_" + entry.Target + ".txt", nil
}

type fakeHistory struct {
	records []domain.ExecutionRecord
	err     error
}

func (h *fakeHistory) Save(record domain.ExecutionRecord) error {
	h.records = append(h.records, record)
	return h.err
}

func (h *fakeHistory) Records(int, domain.Action) ([]domain.ExecutionRecord, error) {
	return h.records, nil
}

func (h *fakeHistory) Clear() error { return nil }
func (h *fakeHistory) Path() string { return "memory" }

type fakeModule struct {
	name  string
	out   string
	err   error
	panic bool
}

func (m *fakeModule) Name() string { return m.name }

func (m *fakeModule) Run(_ context.Context, target string) (string, error) {
	if m.panic {
		panic("module exploded")
	}
	return m.out + target, m.err
}

type denyGuard struct{ err error }

func (g denyGuard) Check(domain.Intent) error { return g.err }

func newExecutor() (*Executor, *fakeRunner, *fakeLogs, *fakeHistory) {
	runner := &fakeRunner{results: map[string]ports.ToolResult{}}
	logs := &fakeLogs{}
	history := &fakeHistory{}
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &Executor{
		Runner:  runner,
		Logs:    logs,
		History: history,
		Now:     func() time.Time { return fixed },
	}, runner, logs, history
}

func TestExecuteScanIP(t *testing.T) {
	exec, runner, logs, history := newExecutor()

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionScanIP, "8.8.8.8"), domain.LangEN)

	assert.Equal(t, "nmap ok", out)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, ports.ToolInvocation{
		Name:    "nmap",
		Args:    []string{"-T4", "-F", "8.8.8.8"},
		Timeout: domain.DefaultToolTimeout,
	}, runner.calls[0])

	require.Len(t, logs.entries, 1)
	assert.Equal(t, domain.ActionScanIP, logs.entries[0].Action)
	assert.Equal(t, "8.8.8.8", logs.entries[0].Target)
	assert.Equal(t, "nmap ok", logs.entries[0].RawOutput)

	require.Len(t, history.records, 1)
	assert.True(t, history.records[0].Success)
	assert.Equal(t, "/logs/scan_ip_8.8.8.8.txt", history.records[0].LogPath)
}

func TestExecuteWebScanRunsToolsInOrder(t *testing.T) {
	exec, runner, _, _ := newExecutor()
	exec.Binaries = Binaries{Wordlist: "/tmp/words.txt"}
	exec.Timeout = time.Minute

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionWebScan, "example.com"), domain.LangEN)

	require.Len(t, runner.calls, 3)
	assert.Equal(t, "nmap", runner.calls[0].Name)
	assert.Equal(t, []string{"-host", "example.com", "-nointeractive"}, runner.calls[1].Args)
	assert.Equal(t, []string{
		"-w", "/tmp/words.txt",
		"-u", "https://example.com/FUZZ",
		"-mc", "200,403,500",
		"-t", "80",
	}, runner.calls[2].Args)
	for _, call := range runner.calls {
		assert.Equal(t, time.Minute, call.Timeout)
	}

	assert.Equal(t,
		"\n===== nmap =====\nnmap ok\n===== nikto =====\nnikto ok\n===== ffuf =====\nffuf ok",
		out)
}

func TestExecuteCapturesToolConditionsAsText(t *testing.T) {
	exec, runner, logs, _ := newExecutor()
	exec.Timeout = 2 * time.Second
	runner.results["nmap"] = ports.ToolResult{NotFound: true}
	runner.results["nikto"] = ports.ToolResult{TimedOut: true, Output: "partial"}
	runner.results["ffuf"] = ports.ToolResult{ExitCode: 1, Err: errors.New("exit status 1")}

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionWebScan, "example.com"), domain.LangEN)

	assert.Contains(t, out, "Command not found: nmap")
	assert.Contains(t, out, "Timed out after 2s: nikto\npartial")
	assert.Contains(t, out, "exit status 1")
	assert.Len(t, logs.entries, 1)
}

func TestExecuteMissingModules(t *testing.T) {
	exec, _, logs, _ := newExecutor()

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionLeakCheck, "jane@example.com"), domain.LangEN)
	assert.Equal(t, "Module leak_check missing.", out)

	out = exec.Execute(context.Background(), domain.NewIntent(domain.ActionUsernameHunt, "jdoe"), domain.LangPT)
	assert.Equal(t, "Módulo username_hunt ausente.", out)

	require.Len(t, logs.entries, 2)
	assert.Equal(t, "Module leak_check missing.", logs.entries[0].RawOutput)
}

func TestExecuteModules(t *testing.T) {
	exec, runner, _, _ := newExecutor()
	exec.LeakChecker = &fakeModule{name: "leak_check", out: "leak:"}
	exec.UsernameHunter = &fakeModule{name: "username_hunt", out: "hunt:"}

	assert.Equal(t, "leak:a@b.io", exec.Execute(context.Background(), domain.NewIntent(domain.ActionLeakCheck, "a@b.io"), domain.LangEN))
	assert.Equal(t, "hunt:jdoe", exec.Execute(context.Background(), domain.NewIntent(domain.ActionUsernameHunt, "jdoe"), domain.LangEN))
	assert.Empty(t, runner.calls)
}

func TestExecutePunctuatedUsernameReachesHunter(t *testing.T) {
	guard, err := security.NewGuardrail(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	for _, utterance := range []string{"what about username john?", "username jdoe!", "find username (alice)"} {
		resolved, ok := intent.Fallback(utterance)
		require.True(t, ok, utterance)
		require.Equal(t, domain.ActionUsernameHunt, resolved.Action)

		exec, _, logs, _ := newExecutor()
		exec.Guard = guard
		exec.UsernameHunter = &fakeModule{name: "username_hunt", out: "hunt:"}

		out := exec.Execute(context.Background(), resolved, domain.LangEN)
		assert.Equal(t, "hunt:"+resolved.Target, out, utterance)
		assert.Len(t, logs.entries, 1)
	}
}

func TestExecuteModuleErrorIsLocalized(t *testing.T) {
	exec, _, logs, history := newExecutor()
	exec.LeakChecker = &fakeModule{name: "leak_check", err: errors.New("endpoint down")}

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionLeakCheck, "a@b.io"), domain.LangPT)

	assert.Equal(t, "⚠️ Erro: leak_check: endpoint down", out)
	assert.Empty(t, logs.entries)
	require.Len(t, history.records, 1)
	assert.False(t, history.records[0].Success)
}

func TestExecuteRecoversPanics(t *testing.T) {
	exec, _, logs, _ := newExecutor()
	exec.UsernameHunter = &fakeModule{name: "username_hunt", panic: true}

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionUsernameHunt, "jdoe"), domain.LangEN)

	assert.Equal(t, "⚠️ Error: module exploded", out)
	assert.Empty(t, logs.entries)
}

func TestExecuteBlockedTarget(t *testing.T) {
	exec, runner, logs, _ := newExecutor()
	exec.Guard = denyGuard{err: errors.New("target blocked: option injection")}

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionScanIP, "-oN/etc/passwd"), domain.LangEN)

	assert.Equal(t, "⚠️ Error: target blocked: option injection", out)
	assert.Empty(t, runner.calls)
	assert.Empty(t, logs.entries)
}

func TestExecuteLogWriteFailure(t *testing.T) {
	exec, _, logs, _ := newExecutor()
	logs.err = errors.New("disk full")

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionScanIP, "1.1.1.1"), domain.LangEN)

	assert.Equal(t, "⚠️ Error: write execution log: disk full", out)
}

func TestExecuteHistoryFailureIsIgnored(t *testing.T) {
	exec, _, _, history := newExecutor()
	history.err = errors.New("locked")

	out := exec.Execute(context.Background(), domain.NewIntent(domain.ActionScanIP, "1.1.1.1"), domain.LangEN)

	assert.Equal(t, "nmap ok", out)
}

func TestExecuteUnknownAction(t *testing.T) {
	exec, _, _, _ := newExecutor()

	out := exec.Execute(context.Background(), domain.Intent{Action: domain.ActionUnknown}, domain.LangEN)

	assert.Equal(t, "Action not implemented.", out)
}

func TestEveryActionHasHandler(t *testing.T) {
	exec, _, _, _ := newExecutor()
	exec.LeakChecker = &fakeModule{name: "leak_check"}
	exec.UsernameHunter = &fakeModule{name: "username_hunt"}
	notImplemented := domain.Text(domain.TextNotImplemented, domain.LangEN)

	for _, action := range domain.Actions() {
		t.Run(string(action), func(t *testing.T) {
			out, err := exec.dispatch(context.Background(), domain.NewIntent(action, "target.example"), domain.LangEN)
			require.NoError(t, err)
			assert.NotEqual(t, notImplemented, out)
		})
	}
}
