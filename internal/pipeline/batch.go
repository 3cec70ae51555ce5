package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/countryflags/internal/model"
)

// DefaultConcurrency is the fetch limit of a BatchFetcher built without
// WithConcurrency. The CLI configuration default is this value.
const DefaultConcurrency = 4

// CountryGetter fetches a single country by name.
type CountryGetter interface {
	GetByName(ctx context.Context, name string) (*model.CountryDetail, error)
}

// BatchFetcher fetches country details concurrently.
type BatchFetcher struct {
	getter      CountryGetter
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchFetcher.
type BatchOption func(*BatchFetcher)

// WithBatchLogger sets the logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchFetcher) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of fetches in flight.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchFetcher) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchFetcher creates a BatchFetcher.
func NewBatchFetcher(getter CountryGetter, opts ...BatchOption) *BatchFetcher {
	b := &BatchFetcher{
		getter:      getter,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// FetchDetails fetches every name and returns one result per name, in input
// order. Individual failures are reported in their result. The error is
// non-nil only when ctx ends before every fetch has started.
func (b *BatchFetcher) FetchDetails(ctx context.Context, names []string) ([]model.Result[*model.CountryDetail], error) {
	b.logger.Debug("fetching countries", "total", len(names), "concurrency", b.concurrency)
	start := time.Now()

	results := make([]model.Result[*model.CountryDetail], len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, name := range names {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = model.Failure[*model.CountryDetail](gctx.Err())
				return gctx.Err()
			default:
			}

			detail, err := b.getter.GetByName(gctx, name)
			if err != nil {
				b.logger.Warn("fetch failed", "country", name, "error", err)
			}
			// Each goroutine writes only its own index.
			results[i] = model.From(detail, err)
			return nil
		})
	}

	err := g.Wait()
	b.logger.Debug("fetch complete", "total", len(names), "elapsed", time.Since(start))
	return results, err
}
