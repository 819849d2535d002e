package schema

// FilterNames removes the excluded table names from names.
// It returns a new slice; the input is not modified.
func FilterNames(names, exclude []string) []string {
	excludeMap := make(map[string]bool)
	for _, name := range exclude {
		excludeMap[name] = true
	}

	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if !excludeMap[name] {
			filtered = append(filtered, name)
		}
	}

	return filtered
}
