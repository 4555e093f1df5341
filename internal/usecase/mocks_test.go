package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// MockContractResolver is a mock implementation of ContractResolver
type MockContractResolver struct {
	mock.Mock
}

func (m *MockContractResolver) Resolve(req domain.ResolveRequest) (domain.ResolvedContract, error) {
	args := m.Called(req)
	return args.Get(0).(domain.ResolvedContract), args.Error(1)
}

func (m *MockContractResolver) LatestVersion() domain.ProtocolVersion {
	args := m.Called()
	return args.Get(0).(domain.ProtocolVersion)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, input string) (*domain.Network, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Network), args.Error(1)
}

func (m *MockNetworkResolver) ListNetworks() []*domain.Network {
	args := m.Called()
	return args.Get(0).([]*domain.Network)
}

// MockSafeClient is a mock implementation of SafeClient
type MockSafeClient struct {
	mock.Mock
}

func (m *MockSafeClient) GetSafeInfo(ctx context.Context, network domain.Network, safe common.Address) (*domain.SafeInfo, error) {
	args := m.Called(ctx, network, safe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SafeInfo), args.Error(1)
}

func (m *MockSafeClient) GetTransactionQueue(ctx context.Context, network domain.Network, safe common.Address) (*domain.TransactionPage, error) {
	args := m.Called(ctx, network, safe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionPage), args.Error(1)
}

func (m *MockSafeClient) GetQueueTags(ctx context.Context, network domain.Network, safe common.Address) (domain.QueueTags, error) {
	args := m.Called(ctx, network, safe)
	return args.Get(0).(domain.QueueTags), args.Error(1)
}

// MockNetworkSelector is a mock implementation of NetworkSelector
type MockNetworkSelector struct {
	mock.Mock
}

func (m *MockNetworkSelector) SelectNetwork(ctx context.Context, networks []*domain.Network, prompt string) (*domain.Network, error) {
	args := m.Called(ctx, networks, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Network), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

// MockCatalog is an in-memory DeploymentCatalog
type MockCatalog struct {
	records []*domain.DeploymentRecord
}

func (m *MockCatalog) Deployment(family domain.ContractFamily, variant domain.TableVariant, version domain.ProtocolVersion) (*domain.DeploymentRecord, bool) {
	for _, r := range m.records {
		if r.Family == family && r.Variant == variant && r.Version.Equal(version) {
			return r, true
		}
	}
	return nil, false
}

func (m *MockCatalog) Deployments(family domain.ContractFamily, variant domain.TableVariant) []*domain.DeploymentRecord {
	var out []*domain.DeploymentRecord
	for _, r := range m.records {
		if r.Family == family && r.Variant == variant {
			out = append(out, r)
		}
	}
	return out
}

func (m *MockCatalog) All() []*domain.DeploymentRecord { return m.records }
func (m *MockCatalog) SourceName() string              { return "memory" }

const multiSendABI = `[
	{"type":"function","name":"multiSend","inputs":[{"name":"transactions","type":"bytes"}],"outputs":[],"stateMutability":"payable"},
	{"type":"function","name":"setup","inputs":[
		{"name":"owners","type":"address[]"},
		{"name":"threshold","type":"uint256"}
	],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"approve","inputs":[
		{"name":"to","type":"address"},
		{"name":"operation","type":"uint8"},
		{"name":"salt","type":"bytes32"},
		{"name":"enabled","type":"bool"}
	],"outputs":[],"stateMutability":"nonpayable"}
]`

func parseABI(t *testing.T, raw string) *abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(raw))
	require.NoError(t, err)
	return &parsed
}
