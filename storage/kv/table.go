package kv

// Table is a named simulated table persisted under a single key.
//
// Seeding only happens when the key has never been written: an explicitly
// emptied table (key present, empty collection) stays empty. This is what
// distinguishes "never initialized" from "user deleted everything".
type Table[T any] struct {
	store Store
	key   string
	seed  func() []T
}

func NewTable[T any](store Store, key string, seed func() []T) *Table[T] {
	return &Table[T]{store: store, key: key, seed: seed}
}

func (t *Table[T]) All() ([]T, error) {
	rows := make([]T, 0)
	ok, err := t.store.Get(t.key, &rows)
	if err != nil {
		return nil, err
	}
	if ok || t.seed == nil {
		return rows, nil
	}

	rows = t.seed()
	if rows == nil {
		rows = make([]T, 0)
	}
	if err = t.store.Set(t.key, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *Table[T]) Save(rows []T) error {
	if rows == nil {
		rows = make([]T, 0)
	}
	return t.store.Set(t.key, rows)
}
