package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) != -1
}

// FindFunc returns the first element matching the predicate.
func FindFunc[T any](slice []T, match func(T) bool) (T, bool) {
	for _, v := range slice {
		if match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
