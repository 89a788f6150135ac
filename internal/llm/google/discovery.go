package google

import "strings"

// pickModel ranks a listing: each preferred token in order, then the first
// model that can generate content at all. Returns "" when nothing fits.
func pickModel(models []Model, preferred []string) string {
	for _, token := range preferred {
		for _, m := range models {
			if strings.Contains(m.ID(), token) && m.Supports(generateMethod) {
				return m.ID()
			}
		}
	}
	for _, m := range models {
		if m.Supports(generateMethod) {
			return m.ID()
		}
	}
	return ""
}

// modelNames returns up to limit raw model names, in listing order.
func modelNames(models []Model, limit int) []string {
	names := make([]string, 0, limit)
	for _, m := range models {
		if len(names) == limit {
			break
		}
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names
}
