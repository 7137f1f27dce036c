// Package action dispatches approved intents to recon tools and records the results.
package action

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// DefaultWordlist is the content-discovery wordlist used when none is configured.
const DefaultWordlist = "/usr/share/wordlists/dirbuster/directory-list-2.3-medium.txt"

// Binaries names the executables for each external tool.
type Binaries struct {
	Nmap     string
	Nikto    string
	Ffuf     string
	Wordlist string
}

func (b Binaries) withDefaults() Binaries {
	if b.Nmap == "" {
		b.Nmap = domain.ToolNmap
	}
	if b.Nikto == "" {
		b.Nikto = domain.ToolNikto
	}
	if b.Ffuf == "" {
		b.Ffuf = domain.ToolFfuf
	}
	if b.Wordlist == "" {
		b.Wordlist = DefaultWordlist
	}
	return b
}

// Executor implements ports.ActionExecutor.
type Executor struct {
	Runner         ports.ToolRunner
	Guard          ports.TargetGuard
	Logs           ports.ExecutionLogWriter
	History        ports.HistoryRepository
	LeakChecker    ports.ReconModule
	UsernameHunter ports.ReconModule
	Binaries       Binaries
	Timeout        time.Duration
	Logger         ports.Logger
	Now            func() time.Time
}

// Execute runs the intent and returns its raw output.
// Failures come back as a localized error line; no log is written for them.
func (e *Executor) Execute(ctx context.Context, intent domain.Intent, lang domain.Language) string {
	started := e.now()

	raw, err := e.dispatchSafely(ctx, intent, lang)
	if err == nil {
		raw, err = e.persist(intent, raw, started)
	}
	if err != nil {
		e.logError("execution failed", err, intent)
		e.record(intent, "", false, started)
		return fmt.Sprintf("%s %s", domain.Text(domain.TextError, lang), err.Error())
	}
	return raw
}

func (e *Executor) dispatchSafely(ctx context.Context, intent domain.Intent, lang domain.Language) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	if e.Guard != nil {
		if err := e.Guard.Check(intent); err != nil {
			return "", err
		}
	}
	return e.dispatch(ctx, intent, lang)
}

func (e *Executor) dispatch(ctx context.Context, intent domain.Intent, lang domain.Language) (string, error) {
	switch intent.Action {
	case domain.ActionScanIP:
		return e.scanIP(ctx, intent.Target, lang), nil
	case domain.ActionWebScan:
		return e.webScan(ctx, intent.Target, lang), nil
	case domain.ActionLeakCheck:
		return e.runModule(ctx, e.LeakChecker, "leak_check", intent.Target, lang)
	case domain.ActionUsernameHunt:
		return e.runModule(ctx, e.UsernameHunter, "username_hunt", intent.Target, lang)
	case domain.ActionUnknown:
		return domain.Text(domain.TextNotImplemented, lang), nil
	default:
		return domain.Text(domain.TextNotImplemented, lang), nil
	}
}

func (e *Executor) scanIP(ctx context.Context, target string, lang domain.Language) string {
	bins := e.Binaries.withDefaults()
	return e.run(ctx, lang, bins.Nmap, "-T4", "-F", target)
}

func (e *Executor) webScan(ctx context.Context, target string, lang domain.Language) string {
	bins := e.Binaries.withDefaults()

	var b strings.Builder
	b.WriteString(separator(domain.ToolNmap))
	b.WriteString(e.scanIP(ctx, target, lang))
	b.WriteString(separator(domain.ToolNikto))
	b.WriteString(e.run(ctx, lang, bins.Nikto, "-host", target, "-nointeractive"))
	b.WriteString(separator(domain.ToolFfuf))
	b.WriteString(e.run(ctx, lang, bins.Ffuf,
		"-w", bins.Wordlist,
		"-u", "https://"+target+"/FUZZ",
		"-mc", "200,403,500",
		"-t", "80",
	))
	return b.String()
}

func separator(tool string) string {
	return "\n===== " + tool + " =====\n"
}

func (e *Executor) runModule(ctx context.Context, module ports.ReconModule, name, target string, lang domain.Language) (string, error) {
	if module == nil {
		return fmt.Sprintf(domain.Text(domain.TextModuleMissing, lang), name), nil
	}
	out, err := module.Run(ctx, target)
	if err != nil {
		return "", fmt.Errorf("%s: %w", module.Name(), err)
	}
	return out, nil
}

// run executes one tool and turns every outcome into text.
func (e *Executor) run(ctx context.Context, lang domain.Language, name string, args ...string) string {
	if e.Runner == nil {
		return fmt.Sprintf(domain.Text(domain.TextCommandNotFound, lang), name)
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultToolTimeout
	}

	e.debug("running tool", map[string]interface{}{"tool": name, "args": args, "timeout": timeout.String()})
	res := e.Runner.Run(ctx, ports.ToolInvocation{Name: name, Args: args, Timeout: timeout})

	switch {
	case res.NotFound:
		return fmt.Sprintf(domain.Text(domain.TextCommandNotFound, lang), name)
	case res.TimedOut:
		return fmt.Sprintf(domain.Text(domain.TextCommandTimedOut, lang), timeout, name) + "\n" + res.Output
	case res.Err != nil && res.Output == "":
		return res.Err.Error()
	default:
		return res.Output
	}
}

func (e *Executor) persist(intent domain.Intent, raw string, started time.Time) (string, error) {
	if e.Logs == nil {
		e.record(intent, "", true, started)
		return raw, nil
	}
	path, err := e.Logs.Write(domain.ExecutionLog{
		Timestamp: e.now(),
		Action:    intent.Action,
		Target:    intent.Target,
		RawOutput: raw,
	})
	if err != nil {
		return "", fmt.Errorf("write execution log: %w", err)
	}
	e.record(intent, path, true, started)
	return raw, nil
}

// record indexes the execution. Index failures never reach the user.
func (e *Executor) record(intent domain.Intent, logPath string, success bool, started time.Time) {
	if e.History == nil {
		return
	}
	err := e.History.Save(domain.ExecutionRecord{
		Timestamp:  started,
		Action:     intent.Action,
		Target:     intent.Target,
		LogPath:    logPath,
		Success:    success,
		DurationMS: e.now().Sub(started).Milliseconds(),
	})
	if err != nil && e.Logger != nil {
		e.Logger.Warn("failed to index execution", map[string]interface{}{"error": err.Error()})
	}
}

func (e *Executor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Executor) debug(msg string, fields map[string]interface{}) {
	if e.Logger != nil {
		e.Logger.Debug(msg, fields)
	}
}

func (e *Executor) logError(msg string, err error, intent domain.Intent) {
	if e.Logger == nil {
		return
	}
	fields := map[string]interface{}{"action": string(intent.Action), "target": intent.Target}
	if errors.Is(err, context.Canceled) {
		fields["cancelled"] = true
	}
	e.Logger.Error(msg, err, fields)
}

var _ ports.ActionExecutor = (*Executor)(nil)
