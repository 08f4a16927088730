package documents

import "encoding/json"

// Field is a two-state optional: either a known value or explicitly unknown.
// Extraction regularly leaves holes in documents, so every comparison rule
// has to decide what an unknown side means instead of tripping over a nil.
type Field[T any] struct {
	value T
	known bool
}

// Known wraps a concrete extracted value.
func Known[T any](v T) Field[T] {
	return Field[T]{value: v, known: true}
}

// Unknown marks a field the extractor could not produce.
func Unknown[T any]() Field[T] {
	return Field[T]{}
}

// Get returns the value and whether it is known.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.known
}

// IsKnown reports whether a value was extracted.
func (f Field[T]) IsKnown() bool {
	return f.known
}

// Or returns the value when known, otherwise the fallback.
func (f Field[T]) Or(fallback T) T {
	if f.known {
		return f.value
	}
	return fallback
}

// MarshalJSON serialises unknown as null so persisted reports stay readable.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.known {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// UnmarshalJSON treats null as unknown.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Field[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Field[T]{value: v, known: true}
	return nil
}
