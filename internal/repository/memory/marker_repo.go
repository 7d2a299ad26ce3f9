package memory

import "context"

type MarkerRepo struct {
	store *Store
}

func NewMarkerRepo(store *Store) *MarkerRepo {
	return &MarkerRepo{store: store}
}

// Lock ничего не делает: транзакции памяти уже выполняются по одной.
func (r *MarkerRepo) Lock(context.Context, string) error {
	return nil
}

func (r *MarkerRepo) Exists(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := r.store.run(ctx, func() error {
		_, ok = r.store.markers[name]
		return nil
	})
	return ok, err
}

func (r *MarkerRepo) Set(ctx context.Context, name string) error {
	return r.store.run(ctx, func() error {
		r.store.markers[name] = struct{}{}
		return nil
	})
}
