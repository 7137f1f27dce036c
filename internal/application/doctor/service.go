// Package doctor runs environment diagnostics.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	appconfig "github.com/doeshing/investigator-go/internal/application/config"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/pkg/filesystem"
	"github.com/doeshing/investigator-go/internal/ports"
)

// ToolLocator finds external binaries.
type ToolLocator interface {
	Available(name string) (string, bool)
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Guard          ports.TargetGuard
	Tools          ToolLocator
	Sessions       ports.SessionStore
	History        ports.HistoryRepository
	Getenv         func(string) string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format v%s, language %s", cfg.ConfigFormatVersion, cfg.GetLanguage())))
	}

	checks = append(checks, s.modelCheck(cfg))
	checks = append(checks, s.toolChecks(cfg)...)
	checks = append(checks, s.guardCheck())
	checks = append(checks, s.sessionCheck())
	if s.History != nil {
		if _, err := s.History.Records(1, ""); err != nil {
			checks = append(checks, warn("Execution index", err.Error()))
		} else {
			checks = append(checks, ok("Execution index", s.History.Path()))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) modelCheck(cfg domain.Config) domain.HealthCheck {
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return warn("Model", fmt.Sprintf("%v; pattern fallback only", err))
	}
	if model.RequiresAuth() && s.getenv(model.AuthEnvVar) == "" {
		return warn("Model", fmt.Sprintf("%s: %s missing; pattern fallback only", model.Name, model.AuthEnvVar))
	}
	return ok("Model", fmt.Sprintf("%s at %s", model.Name, model.Endpoint))
}

func (s *Service) toolChecks(cfg domain.Config) []domain.HealthCheck {
	var checks []domain.HealthCheck
	for _, tool := range []string{domain.ToolNmap, domain.ToolNikto, domain.ToolFfuf} {
		name := "Tool " + tool
		if s.Tools == nil {
			checks = append(checks, warn(name, "tool lookup unavailable"))
			continue
		}
		if path, found := s.Tools.Available(cfg.ToolBinary(tool)); found {
			checks = append(checks, ok(name, path))
		} else {
			checks = append(checks, warn(name, "not found on PATH; output will report it missing"))
		}
	}

	if wordlist := cfg.Tools.FfufWordlist; wordlist != "" {
		if _, err := os.Stat(filesystem.ExpandPath(wordlist)); err != nil {
			checks = append(checks, warn("ffuf wordlist", fmt.Sprintf("%s not readable", wordlist)))
		} else {
			checks = append(checks, ok("ffuf wordlist", wordlist))
		}
	}
	return checks
}

func (s *Service) guardCheck() domain.HealthCheck {
	if s.Guard == nil {
		return warn("Guardrail", "target guardrail not initialized")
	}
	if err := s.Guard.Check(domain.NewIntent(domain.ActionScanIP, "127.0.0.1")); err != nil {
		return fail("Guardrail", fmt.Sprintf("blocks a plain address: %v", err))
	}
	if err := s.Guard.Check(domain.NewIntent(domain.ActionScanIP, "-iL/etc/passwd")); err == nil {
		return warn("Guardrail", "option-style targets are not blocked")
	}
	return ok("Guardrail", "rules loaded")
}

func (s *Service) sessionCheck() domain.HealthCheck {
	if s.Sessions == nil {
		return warn("Session store", "not initialized")
	}
	records, err := s.Sessions.Records()
	if err != nil {
		return warn("Session store", err.Error())
	}
	if _, err := os.Stat(s.Sessions.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return warn("Session store", err.Error())
	}
	return ok("Session store", fmt.Sprintf("%d sessions in %s", len(records), s.Sessions.Path()))
}

func (s *Service) getenv(key string) string {
	if s.Getenv != nil {
		return s.Getenv(key)
	}
	return os.Getenv(key)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
