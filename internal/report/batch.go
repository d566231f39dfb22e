package report

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/reportgen/internal/model"
)

// DefaultConcurrency is the number of reports rendered at once by a
// BatchGenerator when no limit is configured.
const DefaultConcurrency = 4

// Request describes one report of a batch.
type Request struct {
	// Type is the report type to render.
	Type model.ReportType

	// User is the viewer of the report.
	User model.User

	// Items are the line items to render. Requests may share the same
	// slice because generation never writes to it.
	Items []model.Item
}

// BatchGenerator renders several reports concurrently.
type BatchGenerator struct {
	generator   *Generator
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchGenerator.
type BatchOption func(*BatchGenerator)

// WithConcurrency sets the maximum number of reports rendered at once.
// Values below 1 are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchGenerator) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger used for batch-level logging.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchGenerator) {
		b.logger = logger
	}
}

// NewBatchGenerator creates a BatchGenerator that renders with g.
func NewBatchGenerator(g *Generator, opts ...BatchOption) *BatchGenerator {
	b := &BatchGenerator{
		generator:   g,
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

// Generate renders every request and returns the results in request order.
//
// The first failing request cancels the rest and its error is returned
// with no results. Requests not started before ctx is done are skipped
// and ctx.Err() is returned.
func (b *BatchGenerator) Generate(ctx context.Context, requests []Request) ([]*Result, error) {
	b.logger.Info("starting batch generation",
		"total_reports", len(requests),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()
	results := make([]*Result, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, req := range requests {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := b.generator.Generate(req.Type, req.User, req.Items)
			if err != nil {
				return err
			}

			// Each goroutine owns a distinct index.
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.logger.Info("batch generation complete",
		"total_reports", len(requests),
		"elapsed", time.Since(startTime),
	)

	return results, nil
}
