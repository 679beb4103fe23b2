package common

// Coalesce picks the first value that differs from the zero value of T.
//
// Parameters:
//   - values: the candidate values, in priority order
//
// Returns:
//   - T: the first non-zero value, or the zero value of T when every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
