package safe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safedeploy/internal/domain"
)

var testSafe = common.HexToAddress("0x8Fe7bA1cB0fE7f29E3C4dA4E6c1a4DC2bF0a2a11")

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGetSafeInfo(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/api/v1/safes/" + testSafe.Hex() + "/": `{
			"address": "` + testSafe.Hex() + `",
			"nonce": "12",
			"threshold": 2,
			"owners": ["0x1111111111111111111111111111111111111111", "0x2222222222222222222222222222222222222222"],
			"masterCopy": "0x3E5c63644E683549055b9Be8653de26E0B4CD36E",
			"fallbackHandler": "0xf48f2B2d2a534e402487b3ee7C18c33Aec0Fe5e4",
			"version": "1.3.0+L2"
		}`,
	})

	client := NewClient(WithRetry(1, time.Millisecond))
	network := domain.Network{ChainID: 10, Name: "optimism", L2: true, TxServiceURL: server.URL + "/"}

	info, err := client.GetSafeInfo(context.Background(), network, testSafe)
	require.NoError(t, err)
	assert.Equal(t, testSafe, info.Address)
	assert.Equal(t, uint64(10), info.ChainID)
	assert.Equal(t, uint64(12), info.Nonce)
	assert.Equal(t, 2, info.Threshold)
	assert.Len(t, info.Owners, 2)
	assert.Equal(t, common.HexToAddress("0x3E5c63644E683549055b9Be8653de26E0B4CD36E"), info.MasterCopy)
	assert.Equal(t, "1.3.0+L2", info.Version)
}

func TestGetSafeInfoWithoutService(t *testing.T) {
	client := NewClient()
	_, err := client.GetSafeInfo(context.Background(), domain.Network{ChainID: 777}, testSafe)
	assert.ErrorIs(t, err, ErrNoTransactionService)
}

func TestGetSafeInfoNotFound(t *testing.T) {
	server := newTestServer(t, nil)
	client := NewClient(WithRetry(3, time.Millisecond))

	_, err := client.GetSafeInfo(context.Background(), domain.Network{ChainID: 1, TxServiceURL: server.URL}, testSafe)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGetTransactionQueue(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/api/v1/safes/" + testSafe.Hex() + "/multisig-transactions/": `{
			"count": 2,
			"next": null,
			"previous": null,
			"results": [
				{
					"safeTxHash": "0xaa",
					"to": "0x40A2aCCbd92BCA938b02010E17A5b8929b49130D",
					"value": "0",
					"data": "0x8d80ff0a",
					"operation": 1,
					"nonce": 13,
					"confirmationsRequired": 2,
					"confirmations": [{"owner": "0x1111111111111111111111111111111111111111"}],
					"submissionDate": "2024-05-01T10:00:00Z",
					"modified": "2024-05-01T11:00:00Z"
				},
				{
					"safeTxHash": "0xbb",
					"to": "0x1111111111111111111111111111111111111111",
					"value": "1000",
					"data": null,
					"operation": 0,
					"nonce": "12",
					"confirmationsRequired": 2,
					"confirmations": [],
					"submissionDate": "2024-04-30T10:00:00Z",
					"modified": "2024-04-30T10:00:00Z"
				}
			]
		}`,
	})

	client := NewClient(WithRetry(1, time.Millisecond))
	page, err := client.GetTransactionQueue(context.Background(), domain.Network{ChainID: 1, TxServiceURL: server.URL}, testSafe)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	assert.Empty(t, page.Next)
	require.Len(t, page.Results, 2)

	first := page.Results[0]
	assert.Equal(t, "0xaa", first.SafeTxHash)
	assert.Equal(t, uint64(13), first.Nonce)
	assert.Equal(t, 1, first.Confirmations)
	assert.Equal(t, "0x8d80ff0a", first.Data)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC), first.Modified.UTC())

	assert.Equal(t, uint64(12), page.Results[1].Nonce)
	assert.Empty(t, page.Results[1].Data)
}

func TestGetQueueTags(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/v1/chains/100/safes/" + testSafe.Hex(): `{"txQueuedTag": "1714550400", "txHistoryTag": null}`,
	})

	client := NewClient(WithGatewayURL(server.URL+"/"), WithRetry(1, time.Millisecond))
	tags, err := client.GetQueueTags(context.Background(), domain.Network{ChainID: 100}, testSafe)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueTags{Queued: "1714550400"}, tags)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"txQueuedTag": "1", "txHistoryTag": "2"}`))
	}))
	defer server.Close()

	client := NewClient(WithGatewayURL(server.URL), WithRetry(3, time.Millisecond))
	tags, err := client.GetQueueTags(context.Background(), domain.Network{ChainID: 1}, testSafe)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueTags{Queued: "1", History: "2"}, tags)
	assert.Equal(t, int32(3), calls.Load())
}
