// Package app wires the application services to their infrastructure adapters.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/doeshing/investigator-go/assets"
	"github.com/doeshing/investigator-go/internal/application/action"
	"github.com/doeshing/investigator-go/internal/application/conversation"
	"github.com/doeshing/investigator-go/internal/application/doctor"
	"github.com/doeshing/investigator-go/internal/application/intent"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/infrastructure/ai"
	"github.com/doeshing/investigator-go/internal/infrastructure/cache"
	"github.com/doeshing/investigator-go/internal/infrastructure/config"
	"github.com/doeshing/investigator-go/internal/infrastructure/history"
	"github.com/doeshing/investigator-go/internal/infrastructure/recon"
	"github.com/doeshing/investigator-go/internal/infrastructure/security"
	"github.com/doeshing/investigator-go/internal/infrastructure/tools"
	"github.com/doeshing/investigator-go/internal/pkg/filesystem"
	"github.com/doeshing/investigator-go/internal/pkg/logger"
	"github.com/doeshing/investigator-go/internal/ports"
)

// Options selects how the container is built.
type Options struct {
	ConfigPath    string
	ModelOverride string
	Verbose       bool
}

// Container wires up application services with infrastructure adapters.
// It is built once per process.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Resolver       *intent.Resolver
	Executor       *action.Executor
	Conversation   *conversation.Service
	DoctorService  *doctor.Service
	HistoryStore   *history.SQLiteStore
	SessionStore   *history.SessionStore
	LogWriter      *history.LogWriter
	CacheStore     *cache.FileCache
	Guardrail      *security.Guardrail
	Runner         *tools.LocalRunner
	UsernameHunter *recon.UsernameHunter
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log := logger.New(opts.Verbose)

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", cfgLoader.Path(), err)
	}

	guardrail, err := security.NewGuardrail(cfg.Security.RulesFile)
	if err != nil {
		log.Warn("guardrail rules unusable, using embedded defaults", map[string]interface{}{"error": err.Error()})
		guardrail, err = security.NewGuardrailFromYAML(assets.DefaultGuardrailYAML, "embedded")
		if err != nil {
			return nil, err
		}
	}

	historyStore := history.NewSQLiteStore(filesystem.ExpandPath(cfg.Paths.HistoryDB))
	sessionStore := history.NewSessionStore(filesystem.ExpandPath(cfg.Paths.SessionsFile), log)
	logWriter := history.NewLogWriter(filesystem.ExpandPath(cfg.Paths.LogsDir))
	runner := tools.NewLocalRunner(log)

	resolver := &intent.Resolver{
		Classifier: &intent.Classifier{Provider: buildProvider(cfg, opts.ModelOverride, log)},
		Logger:     log,
	}
	var cacheStore *cache.FileCache
	if cfg.Cache.Enabled {
		cacheStore = cache.NewFileCache("",
			cache.WithTTL(cfg.GetCacheTTL()),
			cache.WithMaxEntries(cfg.GetCacheMaxEntries()),
		)
		resolver.Cache = cacheStore
	}

	executor := &action.Executor{
		Runner:  runner,
		Guard:   guardrail,
		Logs:    logWriter,
		History: historyStore,
		Binaries: action.Binaries{
			Nmap:     cfg.ToolBinary(domain.ToolNmap),
			Nikto:    cfg.ToolBinary(domain.ToolNikto),
			Ffuf:     cfg.ToolBinary(domain.ToolFfuf),
			Wordlist: filesystem.ExpandPath(cfg.Tools.FfufWordlist),
		},
		Timeout: cfg.GetToolTimeout(),
		Logger:  log,
	}
	if cfg.Modules.LeakCheck.Enabled {
		executor.LeakChecker = recon.NewLeakChecker(cfg.Modules.LeakCheck.Endpoint, nil)
	}
	var hunter *recon.UsernameHunter
	if cfg.Modules.UsernameHunt.Enabled {
		sites, err := recon.LoadSites(cfg.Modules.UsernameHunt.SitesFile)
		if err != nil {
			log.Warn("username hunt disabled", map[string]interface{}{"error": err.Error()})
		} else {
			hunter = recon.NewUsernameHunter(sites,
				recon.WithConcurrency(cfg.GetProbeConcurrency()),
				recon.WithProbeTimeout(cfg.GetProbeTimeout()),
				recon.WithHunterLogger(log),
			)
			executor.UsernameHunter = hunter
		}
	}

	conversationService := &conversation.Service{
		Resolver: resolver,
		Executor: executor,
		Sessions: sessionStore,
		Logger:   log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Guard:          guardrail,
		Tools:          runner,
		Sessions:       sessionStore,
		History:        historyStore,
	}

	return &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Resolver:       resolver,
		Executor:       executor,
		Conversation:   conversationService,
		DoctorService:  doctorService,
		HistoryStore:   historyStore,
		SessionStore:   sessionStore,
		LogWriter:      logWriter,
		CacheStore:     cacheStore,
		Guardrail:      guardrail,
		Runner:         runner,
		UsernameHunter: hunter,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c == nil || c.HistoryStore == nil {
		return nil
	}
	return c.HistoryStore.Close()
}

// buildProvider returns the classifier's model provider, or nil when none is
// usable. A nil provider leaves resolution to the pattern rules.
func buildProvider(cfg domain.Config, override string, log ports.Logger) ports.Provider {
	model, err := cfg.GetDefaultModel()
	if override != "" {
		var found bool
		model, found = cfg.FindModelByName(override)
		if !found {
			err = fmt.Errorf("model %s not found in configuration", override)
		} else {
			err = nil
		}
	}
	if err != nil {
		log.Warn("no model configured, using pattern fallback only", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if model.RequiresAuth() && os.Getenv(model.AuthEnvVar) == "" {
		log.Warn("model key missing, using pattern fallback only", map[string]interface{}{
			"model": model.Name,
			"env":   model.AuthEnvVar,
		})
		return nil
	}

	provider, err := ai.NewFactory(cfg.GetModelTimeout()).ForModel(model)
	if err != nil {
		log.Warn("model provider unavailable", map[string]interface{}{"model": model.Name, "error": err.Error()})
		return nil
	}
	return provider
}
