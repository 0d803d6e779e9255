package proforma

import (
	"context"

	"github.com/rpgo/rental-proforma/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ComputeAll runs ComputeAll on the default engine.
func ComputeAll(ctx context.Context, docs []domain.Document, concurrency int) ([]Result, error) {
	return defaultEngine.ComputeAll(ctx, docs, concurrency)
}

// ComputeAll evaluates docs with at most concurrency computations in
// flight and returns the results in input order. Validation failures are
// per-item results, not errors; the only error is ctx being done before
// every item ran.
func (e *Engine) ComputeAll(ctx context.Context, docs []domain.Document, concurrency int) ([]Result, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]Result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = NewResult(e.Compute(doc))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.logger.Debugf("batch computed %d documents", len(docs))
	return results, nil
}
