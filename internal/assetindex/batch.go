package assetindex

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DecodeBatch decodes files concurrently and returns once every decode has
// settled. Successful assets are returned in input order; failures are
// aggregated into the returned error. Callers publish the batch only after
// this returns so the index never observes a partial batch.
func DecodeBatch(ctx context.Context, files []File) ([]Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	decoded := make([]Asset, len(files))
	ok := make([]bool, len(files))

	var (
		mu   sync.Mutex
		errs error
	)

	// Goroutines never return an error so that one bad file cannot
	// cancel its siblings; failures are collected instead.
	var g errgroup.Group
	for i, f := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			a, err := Decode(f.Name, f.Data)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%w: %w", ErrDecodeFailed, err))
				mu.Unlock()
				return nil
			}
			decoded[i] = a
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assets := make([]Asset, 0, len(files))
	for i, a := range decoded {
		if ok[i] {
			assets = append(assets, a)
		}
	}
	return assets, errs
}
