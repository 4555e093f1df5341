package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds parallel asset reads during Load
const maxConcurrentReads = 8

type tableKey struct {
	family  domain.ContractFamily
	variant domain.TableVariant
}

// Registry is an immutable in-memory index of deployment records
type Registry struct {
	source string
	all    []*domain.DeploymentRecord
	tables map[tableKey][]*domain.DeploymentRecord
}

type options struct {
	includeUnreleased bool
	logger            *slog.Logger
}

// Option configures registry construction
type Option func(*options)

// WithUnreleased keeps records not yet marked as released
func WithUnreleased(include bool) Option {
	return func(o *options) { o.includeUnreleased = include }
}

// WithLogger sets the logger used while loading
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New indexes the given records. The records must not be modified afterwards.
func New(source string, records []*domain.DeploymentRecord, opts ...Option) *Registry {
	o := buildOptions(opts)

	kept := lo.Filter(records, func(r *domain.DeploymentRecord, _ int) bool {
		return r != nil && (r.Released || o.includeUnreleased)
	})
	slices.SortStableFunc(kept, func(a, b *domain.DeploymentRecord) int {
		return b.Version.Compare(a.Version)
	})

	tables := lo.GroupBy(kept, func(r *domain.DeploymentRecord) tableKey {
		return tableKey{r.Family, r.Variant}
	})

	return &Registry{
		source: source,
		all:    kept,
		tables: tables,
	}
}

// Load reads every known asset from src and indexes it
func Load(ctx context.Context, src Source, opts ...Option) (*Registry, error) {
	o := buildOptions(opts)

	versions, err := src.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registry versions: %w", err)
	}

	var (
		mu      sync.Mutex
		records []*domain.DeploymentRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for _, version := range versions {
		for _, table := range assetTables {
			g.Go(func() error {
				record, err := loadTable(gctx, src, version, table)
				if err != nil {
					return err
				}
				if record == nil {
					return nil
				}
				mu.Lock()
				records = append(records, record)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.Debug("deployment registry loaded",
		"source", src.Name(),
		"versions", len(versions),
		"records", len(records),
	)

	return New(src.Name(), records, opts...), nil
}

// loadTable returns the record of one table at one version, or nil if the
// source has none of its files
func loadTable(ctx context.Context, src Source, version string, table assetTable) (*domain.DeploymentRecord, error) {
	for _, file := range table.Files {
		data, err := src.ReadAsset(ctx, version, file)
		if err != nil {
			if isNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s v%s: %w", file, version, err)
		}
		record, err := parseAsset(data, table, version)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s v%s: %w", file, version, err)
		}
		return record, nil
	}
	return nil, nil
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Deployment returns the record of a family table at an exact version
func (r *Registry) Deployment(family domain.ContractFamily, variant domain.TableVariant, version domain.ProtocolVersion) (*domain.DeploymentRecord, bool) {
	return lo.Find(r.tables[tableKey{family, variant}], func(rec *domain.DeploymentRecord) bool {
		return rec.Version.Equal(version)
	})
}

// Deployments returns the records of a family table, newest first
func (r *Registry) Deployments(family domain.ContractFamily, variant domain.TableVariant) []*domain.DeploymentRecord {
	return slices.Clone(r.tables[tableKey{family, variant}])
}

// All returns every record, newest first
func (r *Registry) All() []*domain.DeploymentRecord {
	return slices.Clone(r.all)
}

// SourceName describes where the records were loaded from
func (r *Registry) SourceName() string {
	return r.source
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentCatalog = (*Registry)(nil)
