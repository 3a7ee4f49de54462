package utilities

// Contains reports whether v is one of values
func Contains[T comparable](values []T, v T) bool {
	for i := range values {
		if values[i] == v {
			return true
		}
	}
	return false
}
