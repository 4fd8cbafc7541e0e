package tx

import "context"

// Manager runs fn inside one transaction. Stores called with the ctx passed to fn join it.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager runs fn directly; used by in-memory stores and tests.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Do runs fn inside m and returns its value. The zero value is returned on error.
func Do[T any](ctx context.Context, m Manager, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := m.Within(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
