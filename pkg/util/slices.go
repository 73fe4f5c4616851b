package util

// InPlaceFilter keeps the elements matching p and returns how many were removed
func InPlaceFilter[T any](s *[]T, p func(T) bool) int {
	before := len(*s)

	i := 0
	for _, e := range *s {
		if p(e) {
			(*s)[i] = e
			i++
		}
	}
	clear((*s)[i:])
	*s = (*s)[:i]

	return before - i
}
