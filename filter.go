package debugview

import "github.com/ackinari/debugview/config"

// filterValue prunes object keys before rendering. Arrays are always
// recursed element-wise; nested objects are only descended into when
// Recursive is set, otherwise a kept key carries its subtree unchanged.
func filterValue(v any, f config.Filter) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, child := range t {
			keep := contains(f.Keys, key)
			if f.Mode == "exclude" {
				keep = !keep
			}
			if !keep {
				continue
			}
			if f.Recursive {
				out[key] = filterValue(child, f)
			} else {
				out[key] = child
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = filterValue(child, f)
		}
		return out
	}
	return v
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
