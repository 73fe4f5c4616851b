package util

// Deduplicate returns the first occurrence of every non-zero item, skipping anything in ignore
func Deduplicate[T comparable](items []T, ignore ...T) []T {
	var zero T
	present := make(map[T]bool, len(items)+len(ignore))
	for _, item := range ignore {
		present[item] = true
	}

	var list []T
	for _, item := range items {
		if item == zero || present[item] {
			continue
		}

		present[item] = true
		list = append(list, item)
	}

	return list
}
