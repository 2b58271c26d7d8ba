package di

import (
	"time"

	"go.uber.org/zap"

	"vesseldocs-backend/application/search"
	"vesseldocs-backend/application/status"
	"vesseldocs-backend/domain/docs"
	"vesseldocs-backend/infrastructure/config"
	"vesseldocs-backend/infrastructure/corpus"
	"vesseldocs-backend/pkg/auth"
	"vesseldocs-backend/pkg/faults"
	"vesseldocs-backend/pkg/observability"
)

// metricsNamespace prefixes every Prometheus metric name.
const metricsNamespace = "vesseldocs"

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Resolver      *config.Resolver
	Prober        *config.Prober
	Index         *docs.Index
	SessionStore  auth.SessionStore
	Authenticator *auth.Authenticator
	Injector      *faults.Injector
	OutageGate    faults.OutageGate
	SearchService *search.Service
	Reporter      *status.Reporter
	Metrics       *observability.Collector
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideResolver resolves the backend profile once at startup. A resolution
// failure here is fatal: the process must not serve with an unknown mode.
func ProvideResolver(cfg *config.Config, logger *zap.Logger) (*config.Resolver, error) {
	return config.NewResolver(cfg, logger)
}

// ProvideProber creates the connectivity prober
func ProvideProber(cfg *config.Config, logger *zap.Logger) *config.Prober {
	return config.NewProber(time.Duration(cfg.ProbeTimeoutSeconds)*time.Second, logger)
}

// ProvideIndex loads the corpus index from disk. Serving never starts on a
// partial or malformed index.
func ProvideIndex(cfg *config.Config, logger *zap.Logger) (*docs.Index, error) {
	return corpus.LoadIndex(cfg.CorpusIndexPath, logger)
}

// ProvideSessionStore creates the in-memory session store
func ProvideSessionStore() auth.SessionStore {
	return auth.NewMemorySessionStore()
}

// ProvideAuthenticator wires the account whitelist, the session store and
// the resolver (as the current-mode source) into the authenticator.
func ProvideAuthenticator(
	cfg *config.Config,
	store auth.SessionStore,
	resolver *config.Resolver,
	logger *zap.Logger,
) (*auth.Authenticator, error) {
	accounts, err := config.LoadAccounts(cfg)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.SessionTTLSeconds) * time.Second
	return auth.NewAuthenticator(accounts, store, resolver, ttl, logger), nil
}

// ProvideInjector creates the latency injector
func ProvideInjector(cfg *config.Config) *faults.Injector {
	return faults.NewInjector(time.Duration(cfg.MaxLatencyMs) * time.Millisecond)
}

// ProvideOutageGate creates the outage gate
func ProvideOutageGate() faults.OutageGate {
	return faults.NewOutageGate()
}

// ProvideSearchService creates the search service
func ProvideSearchService(index *docs.Index, logger *zap.Logger) *search.Service {
	return search.NewService(index, logger)
}

// ProvideReporter creates the health and status reporter
func ProvideReporter(
	resolver *config.Resolver,
	prober *config.Prober,
	index *docs.Index,
	store auth.SessionStore,
	gate faults.OutageGate,
	logger *zap.Logger,
) *status.Reporter {
	return status.NewReporter(resolver, prober, index, store, gate, logger)
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector(metricsNamespace)
}
