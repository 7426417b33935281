package worker

import "context"

// funcJob adapts a function over one item to a Job.
type funcJob[T, R any] struct {
	item T
	fn   func(ctx context.Context, item T) (R, error)
}

type funcResult[R any] struct {
	value R
	err   error
}

func (r *funcResult[R]) GetError() error {
	return r.err
}

func (j *funcJob[T, R]) Execute(ctx context.Context) Result {
	v, err := j.fn(ctx, j.item)
	return &funcResult[R]{value: v, err: err}
}

// Map applies fn to every item on a pool of the given size. Values and
// errors are returned index-aligned with items.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, []error) {
	values := make([]R, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return values, errs
	}

	pool := NewPool(ctx, min(workers, len(items)))
	pool.Start()
	for _, item := range items {
		pool.Submit(&funcJob[T, R]{item: item, fn: fn})
	}
	results := pool.Wait()

	for i, r := range results {
		errs[i] = r.GetError()
		if fr, ok := r.(*funcResult[R]); ok {
			values[i] = fr.value
		}
	}
	return values, errs
}
