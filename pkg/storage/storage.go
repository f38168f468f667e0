package storage

import "context"

// Key identifies a single record by its primary key attributes.
type Key map[string]any

// RecordStore is the keyed, indexed persistence abstraction over a document table family.
// It never locks the backing table; consistency comes from conditional writes only.
type RecordStore interface {
	// Put writes record into table. When cond is set and the store rejects the write
	// only because cond does not hold, Put reports success.
	Put(ctx context.Context, table string, record any, cond *Condition) error

	// Query runs an exact-match query on a secondary index and unmarshals every match
	// into out, which must be a pointer to a slice. Items keep the index order.
	Query(ctx context.Context, table, index, field string, value any, out any) error

	// GetItem performs a strongly consistent point read. found is false when the key
	// does not exist; out is left untouched in that case.
	GetItem(ctx context.Context, table string, key Key, out any) (found bool, err error)

	// UpdateValues rewrites every attribute in values and leaves the rest untouched.
	// It fails with ErrNotFound when the key does not exist.
	UpdateValues(ctx context.Context, table string, key Key, values map[string]any) error
}

// Storage defines the root interface for the entire data layer.
// Components should depend on the more granular interfaces instead of this one.
type Storage interface {
	RecordStore
	TransactionRepository
}

// QueryAll runs RecordStore.Query and returns the matches as a typed slice.
// The result is never nil.
func QueryAll[T any](ctx context.Context, rs RecordStore, table, index, field string, value any) ([]T, error) {
	items := []T{}
	if err := rs.Query(ctx, table, index, field, value, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get runs RecordStore.GetItem into a new T.
func Get[T any](ctx context.Context, rs RecordStore, table string, key Key) (*T, bool, error) {
	var item T
	found, err := rs.GetItem(ctx, table, key, &item)
	if err != nil || !found {
		return nil, false, err
	}
	return &item, true, nil
}
