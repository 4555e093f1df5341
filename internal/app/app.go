package app

import (
	"log/slog"

	"github.com/trebuchet-org/safedeploy/internal/domain/config"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Shared dependencies
	Sink usecase.ProgressSink

	// Use cases
	ResolveContract *usecase.ResolveContract
	ListDeployments *usecase.ListDeployments
	ListNetworks    *usecase.ListNetworks
	EncodeCall      *usecase.EncodeCall
	LoadTxQueue     *usecase.LoadTxQueue
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	sink usecase.ProgressSink,
	resolveContract *usecase.ResolveContract,
	listDeployments *usecase.ListDeployments,
	listNetworks *usecase.ListNetworks,
	encodeCall *usecase.EncodeCall,
	loadTxQueue *usecase.LoadTxQueue,
) (*App, error) {
	return &App{
		Config:          cfg,
		Logger:          logger,
		Sink:            sink,
		ResolveContract: resolveContract,
		ListDeployments: listDeployments,
		ListNetworks:    listNetworks,
		EncodeCall:      encodeCall,
		LoadTxQueue:     loadTxQueue,
	}, nil
}
