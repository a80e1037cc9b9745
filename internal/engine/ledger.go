package engine

import (
	"fmt"
	"math"
)

// Delta is a one-unit change to a ledger count
type Delta string

const (
	AddOne    Delta = "add_one"
	RemoveOne Delta = "remove_one"
)

// Valid reports whether d is AddOne or RemoveOne
func (d Delta) Valid() bool {
	return d == AddOne || d == RemoveOne
}

// UnmarshalText rejects unknown deltas
func (d *Delta) UnmarshalText(text []byte) error {
	v := Delta(text)
	if !v.Valid() {
		return fmt.Errorf("%w: unknown delta %q", ErrInvalidOperation, string(text))
	}
	*d = v
	return nil
}

// updateCount applies delta to the count stored under key. A key is present
// only while its count is positive: removing the last unit deletes it.
// On error the ledger is left untouched and the caller's error is returned.
func updateCount[K comparable](counts map[K]uint8, key K, delta Delta, overflowErr, notFoundErr error) error {
	count, ok := counts[key]
	switch delta {
	case AddOne:
		if !ok {
			counts[key] = 1
			return nil
		}
		if count == math.MaxUint8 {
			return overflowErr
		}
		counts[key] = count + 1
	case RemoveOne:
		if !ok {
			return notFoundErr
		}
		if count > 1 {
			counts[key] = count - 1
		} else {
			delete(counts, key)
		}
	default:
		return fmt.Errorf("%w: unknown delta %q", ErrInvalidOperation, delta)
	}
	return nil
}
