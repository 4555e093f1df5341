package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
)

// QueueKey identifies one state of a Safe's transaction queue
type QueueKey struct {
	ChainID uint64
	Safe    common.Address
	Tags    domain.QueueTags
}

// QueueTrigger caches the last fetched queue and re-fetches only when the
// queue key changes. It never polls.
type QueueTrigger struct {
	mu   sync.Mutex
	key  QueueKey
	page *domain.TransactionPage
}

// Load returns the cached page when key matches the last successful fetch,
// and calls fetch otherwise. The boolean reports whether fetch ran.
func (t *QueueTrigger) Load(ctx context.Context, key QueueKey, fetch func(ctx context.Context) (*domain.TransactionPage, error)) (*domain.TransactionPage, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.page != nil && t.key == key {
		return t.page, false, nil
	}

	page, err := fetch(ctx)
	if err != nil {
		return nil, true, err
	}

	t.key = key
	t.page = page
	return page, true, nil
}

// Reset drops the cached page
func (t *QueueTrigger) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.key = QueueKey{}
	t.page = nil
}

// LoadTxQueueParams contains parameters for loading a transaction queue
type LoadTxQueueParams struct {
	Network string
	Safe    common.Address
}

// LoadTxQueueResult contains the pending transactions of a Safe
type LoadTxQueueResult struct {
	Network   *domain.Network
	Safe      common.Address
	Tags      domain.QueueTags
	Page      *domain.TransactionPage
	Refreshed bool
}

// LoadTxQueue loads the pending multisig transactions of a Safe
type LoadTxQueue struct {
	config   *config.RuntimeConfig
	networks NetworkResolver
	client   SafeClient
	selector NetworkSelector
	trigger  *QueueTrigger
	sink     ProgressSink
	log      *slog.Logger
}

// NewLoadTxQueue creates a new LoadTxQueue use case
func NewLoadTxQueue(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	client SafeClient,
	selector NetworkSelector,
	sink ProgressSink,
	log *slog.Logger,
) *LoadTxQueue {
	return &LoadTxQueue{
		config:   cfg,
		networks: networks,
		client:   client,
		selector: selector,
		trigger:  &QueueTrigger{},
		sink:     sink,
		log:      log.With("component", "LoadTxQueue"),
	}
}

// Run executes the use case
func (uc *LoadTxQueue) Run(ctx context.Context, params LoadTxQueueParams) (*LoadTxQueueResult, error) {
	network, err := selectNetwork(ctx, uc.config, uc.networks, uc.selector, params.Network)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "queue",
		Message: fmt.Sprintf("Loading queue of %s on %s", params.Safe.Hex(), network.Name),
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "queue"})

	tags, err := uc.client.GetQueueTags(ctx, *network, params.Safe)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue tags: %w", err)
	}

	key := QueueKey{ChainID: network.ChainID, Safe: params.Safe, Tags: tags}
	page, refreshed, err := uc.trigger.Load(ctx, key, func(ctx context.Context) (*domain.TransactionPage, error) {
		return uc.client.GetTransactionQueue(ctx, *network, params.Safe)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction queue: %w", err)
	}

	uc.log.Debug("transaction queue loaded",
		"chain", network.ChainID,
		"safe", params.Safe.Hex(),
		"queuedTag", tags.Queued,
		"historyTag", tags.History,
		"refreshed", refreshed,
	)

	return &LoadTxQueueResult{
		Network:   network,
		Safe:      params.Safe,
		Tags:      tags,
		Page:      page,
		Refreshed: refreshed,
	}, nil
}
