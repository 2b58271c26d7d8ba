//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"vesseldocs-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideResolver,
	ProvideProber,
	ProvideIndex,
	ProvideSessionStore,
	ProvideAuthenticator,
	ProvideInjector,
	ProvideOutageGate,
	ProvideSearchService,
	ProvideReporter,
	ProvideMetrics,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
