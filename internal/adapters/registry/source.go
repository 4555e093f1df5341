package registry

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/samber/lo"
	"github.com/trebuchet-org/safedeploy/internal/domain"
)

// DefaultRemoteURL serves the assets of the safe-deployments repository
const DefaultRemoteURL = "https://raw.githubusercontent.com/safe-global/safe-deployments/main/src/assets"

//go:embed assets
var embeddedAssets embed.FS

// Source provides raw safe-deployments asset files
type Source interface {
	Name() string
	// Versions lists the versions the source may hold, newest first
	Versions(ctx context.Context) ([]string, error)
	// ReadAsset returns an error matching fs.ErrNotExist for absent files
	ReadAsset(ctx context.Context, version, file string) ([]byte, error)
}

// FSSource reads assets laid out as v<version>/<file>.json
type FSSource struct {
	name string
	fsys fs.FS
}

// NewEmbeddedSource returns the asset subset bundled with the binary
func NewEmbeddedSource() *FSSource {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		panic(err)
	}
	return &FSSource{name: "embedded", fsys: sub}
}

// NewDirSource reads assets from a directory. A safe-deployments checkout
// root is accepted as well as its src/assets directory.
func NewDirSource(dir string) (*FSSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("registry path %s is not a directory", dir)
	}

	nested := filepath.Join(dir, "src", "assets")
	if st, err := os.Stat(nested); err == nil && st.IsDir() {
		dir = nested
	}

	return &FSSource{name: dir, fsys: os.DirFS(dir)}, nil
}

func (s *FSSource) Name() string { return s.name }

func (s *FSSource) Versions(ctx context.Context) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	var versions []domain.ProtocolVersion
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "v") {
			continue
		}
		v, err := domain.ParseProtocolVersion(strings.TrimPrefix(entry.Name(), "v"))
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}

	slices.SortFunc(versions, func(a, b domain.ProtocolVersion) int { return b.Compare(a) })
	return lo.Map(versions, func(v domain.ProtocolVersion, _ int) string { return v.String() }), nil
}

func (s *FSSource) ReadAsset(ctx context.Context, version, file string) ([]byte, error) {
	return fs.ReadFile(s.fsys, path.Join("v"+version, file))
}

// RemoteSource fetches assets over HTTP
type RemoteSource struct {
	baseURL    string
	httpClient *http.Client
	versions   []string
	attempts   uint
	delay      time.Duration
}

// RemoteOption configures a RemoteSource
type RemoteOption func(*RemoteSource)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(s *RemoteSource) { s.httpClient = c }
}

// WithRetry sets the number of attempts and the initial backoff delay
func WithRetry(attempts uint, delay time.Duration) RemoteOption {
	return func(s *RemoteSource) {
		s.attempts = attempts
		s.delay = delay
	}
}

// WithVersions restricts the versions fetched
func WithVersions(versions ...string) RemoteOption {
	return func(s *RemoteSource) { s.versions = versions }
}

// NewRemoteSource creates a source reading from baseURL
func NewRemoteSource(baseURL string, opts ...RemoteOption) *RemoteSource {
	s := &RemoteSource{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		versions: domain.KnownVersions,
		attempts: 3,
		delay:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	// retry-go treats zero attempts as unlimited
	if s.attempts == 0 {
		s.attempts = 1
	}
	return s
}

func (s *RemoteSource) Name() string { return s.baseURL }

func (s *RemoteSource) Versions(ctx context.Context) ([]string, error) {
	return slices.Clone(s.versions), nil
}

func (s *RemoteSource) ReadAsset(ctx context.Context, version, file string) ([]byte, error) {
	url := fmt.Sprintf("%s/v%s/%s", s.baseURL, version, file)

	return retry.DoWithData(
		func() ([]byte, error) {
			return s.fetch(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (s *RemoteSource) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, retry.Unrecoverable(fmt.Errorf("%s: %w", url, fs.ErrNotExist))
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("registry error (status %d) for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return nil, retry.Unrecoverable(fmt.Errorf("registry error (status %d) for %s: %s", resp.StatusCode, url, string(body)))
	}

	return body, nil
}

// isNotExist reports whether err means the asset is absent
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

var (
	_ Source = (*FSSource)(nil)
	_ Source = (*RemoteSource)(nil)
)
