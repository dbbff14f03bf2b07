// Package kv provides the string-keyed, JSON-valued store the mock API
// layer persists its simulated tables in. Implementations must be safe
// for concurrent use.
package kv

type Store interface {
	// Get decodes the value stored under key into v and reports whether
	// the key was present.
	Get(key string, v interface{}) (bool, error)
	// Set encodes v and stores it under key, overwriting any previous value.
	Set(key string, v interface{}) error
	Remove(key string) error
	Has(key string) (bool, error)
}

// GetString is a convenience wrapper for string values; absent keys yield "".
func GetString(s Store, key string) (string, error) {
	var val string
	if _, err := s.Get(key, &val); err != nil {
		return "", err
	}
	return val, nil
}
