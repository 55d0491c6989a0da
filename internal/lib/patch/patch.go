// Package patch implements the overlay merge used by partial updates:
// a nil source pointer leaves the destination unchanged, a non-nil one
// overwrites it.
package patch

func Apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
