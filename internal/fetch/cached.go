package fetch

import (
	"context"
	"time"

	"github.com/minji/esg-compass/internal/db"
)

// CachedFetcher wraps table retrieval with a database-backed snapshot
// cache. Local files are always read fresh; only network sources are
// worth caching. With a nil database it degrades to plain fetching.
type CachedFetcher struct {
	db        *db.DB
	options   *Options
	cacheTTL  time.Duration
	skipCache bool
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(database *db.DB, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = &CachedFetcherConfig{}
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = db.DefaultSnapshotTTL
	}
	return &CachedFetcher{
		db:        database,
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a table source, serving a fresh-enough cached snapshot
// when one exists and refreshing the cache after a network fetch. Cache
// write failures are swallowed: the caller already has the data.
func (f *CachedFetcher) Fetch(ctx context.Context, src string) (*CachedResult, error) {
	cacheable := f.db != nil && !f.skipCache && IsURL(src)

	if cacheable {
		content, hit, err := f.db.GetDatasetSnapshot(ctx, src, f.cacheTTL)
		if err == nil && hit {
			return &CachedResult{
				Result:    &Result{Source: src, Text: content},
				FromCache: true,
			}, nil
		}
	}

	result, err := Source(ctx, src, f.options)
	if err != nil {
		return nil, err
	}

	if cacheable {
		_ = f.db.SaveDatasetSnapshot(ctx, src, result.Text)
	}

	return &CachedResult{Result: result}, nil
}
