package store

// normalizeKeys interprets a keys argument. all is set for nil, which selects
// every key. ok is false for shapes that name no keys at all.
func normalizeKeys(keys any) (list []string, all bool, ok bool) {
	switch k := keys.(type) {
	case nil:
		return nil, true, true
	case string:
		return []string{k}, false, true
	case []string:
		return k, false, true
	case []any:
		list = make([]string, 0, len(k))
		for _, v := range k {
			s, isString := v.(string)
			if !isString {
				return nil, false, false
			}
			list = append(list, s)
		}
		return list, false, true
	default:
		return nil, false, false
	}
}

// truthy reports whether a decoded JSON value counts as present for a
// filtered Get.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
