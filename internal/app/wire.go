//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/safedeploy/internal/adapters"
	"github.com/trebuchet-org/safedeploy/internal/config"
	"github.com/trebuchet-org/safedeploy/internal/logging"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveContract,
		usecase.NewListDeployments,
		usecase.NewListNetworks,
		usecase.NewEncodeCall,
		usecase.NewLoadTxQueue,

		// App
		NewApp,
	)
	return nil, nil
}
