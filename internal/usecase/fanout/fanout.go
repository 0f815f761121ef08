// Package fanout runs independent per-item checks concurrently and collects their
// violations in input order.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gowhere/internal/domain/entity"
)

// maxConcurrency bounds the number of checks in flight for one batch.
const maxConcurrency = 8

// CheckFunc validates item i. It returns the item's violations, or an error when
// a store read needed by the check failed.
type CheckFunc[T any] func(ctx context.Context, i int, item T) (entity.Violations, error)

// Validate runs check for every item and concatenates the violations in the
// order of items, whatever order the checks complete in. The first store error
// cancels the remaining checks and is returned.
func Validate[T any](ctx context.Context, items []T, check CheckFunc[T]) (entity.Violations, error) {
	if len(items) == 0 {
		return nil, nil
	}

	slots := make([]entity.Violations, len(items))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrency)

	for i, item := range items {
		eg.Go(func() error {
			v, err := check(egCtx, i, item)
			if err != nil {
				return err
			}
			slots[i] = v
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out entity.Violations
	for _, v := range slots {
		out.Merge(v)
	}
	return out, nil
}
