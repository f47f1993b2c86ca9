package config

import "strings"

// traverse walks root along the dotted keyPath ("Section.Subsection.Key")
// and returns the leaf value, or nil if any segment is missing or not a
// mapping.
func traverse(root map[string]any, keyPath string) any {
	segments := strings.Split(keyPath, ".")
	var cur any = root
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

// setIn writes value at keyPath within root, creating intermediate mappings
// as needed, and returns the (possibly new) root.
func setIn(root map[string]any, keyPath string, value any) map[string]any {
	if root == nil {
		root = map[string]any{}
	}
	segments := strings.Split(keyPath, ".")
	cur := root
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = value
			break
		}
		next := map[string]any{}
		if existing, ok := cur[seg].(map[string]any); ok {
			for k, v := range existing {
				next[k] = v
			}
		}
		cur[seg] = next
		cur = next
	}
	return root
}

// convert attempts to coerce raw (a YAML-decoded value of the usual scalar
// or []any/map[string]any shapes) into T. Returns ok=false on any
// incompatible shape rather than panicking — Get degrades to zero-value
// silently per §4.1's error semantics.
func convert[T any](raw any) (T, bool) {
	var zero T

	if raw == nil {
		return zero, false
	}
	if v, ok := raw.(T); ok {
		return v, true
	}

	switch any(zero).(type) {
	case int:
		switch n := raw.(type) {
		case int:
			return any(n).(T), true
		case int64:
			return any(int(n)).(T), true
		case float64:
			return any(int(n)).(T), true
		}
	case float64:
		switch n := raw.(type) {
		case int:
			return any(float64(n)).(T), true
		case int64:
			return any(float64(n)).(T), true
		}
	case string:
		// yaml already gives string for string scalars; nothing else coerces.
	case bool:
		// yaml already gives bool for bool scalars; nothing else coerces.
	case []string:
		if arr, ok := raw.([]any); ok {
			out := make([]string, 0, len(arr))
			for _, it := range arr {
				if s, ok := it.(string); ok {
					out = append(out, s)
				}
			}
			return any(out).(T), true
		}
	case map[string]string:
		if m, ok := raw.(map[string]any); ok {
			out := make(map[string]string, len(m))
			for k, v := range m {
				if s, ok := v.(string); ok {
					out[k] = s
				}
			}
			return any(out).(T), true
		}
	case map[string]any:
		if m, ok := raw.(map[string]any); ok {
			return any(m).(T), true
		}
	}
	return zero, false
}

// Get reads keyPath from the document identified by ref and converts the
// leaf to T. On any miss (absent key, I/O error, type mismatch) it returns
// the zero value and false — callers never see an error from Get, per
// §4.1's "fails silently" contract. Typed lookups on immutable documents
// are memoized.
func Get[T any](s *Store, ref DocRef, keyPath string) (T, bool) {
	doc := s.resolve(ref)

	if !doc.mutable {
		doc.mu.RLock()
		if cached, ok := doc.memo[keyPath]; ok {
			doc.mu.RUnlock()
			v, ok := cached.(T)
			return v, ok
		}
		doc.mu.RUnlock()
	}

	root := doc.snapshotRoot()
	raw := traverse(root, keyPath)
	val, ok := convert[T](raw)

	if !doc.mutable {
		doc.mu.Lock()
		if ok {
			doc.memo[keyPath] = val
		}
		doc.mu.Unlock()
	}

	if !ok {
		doc.logger.WithFields(logFields(doc, keyPath)).Debug("config key missing or wrong type")
	}
	return val, ok
}

// GetRequired behaves like Get but logs at Error level on a miss, for keys
// the caller expects to always be present (§4.1 "expected non-null").
func GetRequired[T any](s *Store, ref DocRef, keyPath string) (T, bool) {
	val, ok := Get[T](s, ref, keyPath)
	if !ok {
		doc := s.resolve(ref)
		doc.logger.WithFields(logFields(doc, keyPath)).Error("required config key missing or wrong type")
	}
	return val, ok
}

func logFields(doc *document, keyPath string) map[string]any {
	return map[string]any{"path": doc.path, "key": keyPath}
}

// Set writes value at keyPath in the document identified by ref, creating
// intermediate mappings as needed, and atomically persists the document.
// Refuses (with a Warn log) to mutate an immutable document.
func Set[T any](s *Store, ref DocRef, keyPath string, value T) (T, bool) {
	doc := s.resolve(ref)
	if !doc.mutable {
		doc.logger.WithFields(logFields(doc, keyPath)).Warn("refusing to set key on immutable config document")
		var zero T
		return zero, false
	}

	root := doc.snapshotRoot()
	// copy-on-write so a failed write doesn't leave the in-memory root
	// pointing at a half-mutated map.
	next := make(map[string]any, len(root))
	for k, v := range root {
		next[k] = v
	}
	next = setIn(next, keyPath, value)

	if err := doc.writeThrough(next); err != nil {
		doc.logger.WithError(err).WithFields(logFields(doc, keyPath)).Error("failed to write config document")
		var zero T
		return zero, false
	}
	return value, true
}
