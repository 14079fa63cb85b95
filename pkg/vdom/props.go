package vdom

// Props holds the attributes of an element or the inputs of a component.
type Props map[string]any

// Get returns the value stored under key, or nil.
// It is safe to call on a nil Props.
func (p Props) Get(key string) any {
	if p == nil {
		return nil
	}
	return p[key]
}

// Int returns the value under key as an int.
// The second result is false when the key is absent or not an int.
func (p Props) Int(key string) (int, bool) {
	v, ok := p.Get(key).(int)
	return v, ok
}

// String returns the value under key as a string, or "" if absent.
func (p Props) String(key string) string {
	s, _ := p.Get(key).(string)
	return s
}

// Clone returns a shallow copy of p. A nil Props clones to an empty map.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// MergeProps combines base and override into a new Props.
// Keys present in override win over the same keys in base.
// Neither input is modified; either may be nil.
func MergeProps(base, override Props) Props {
	out := make(Props, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
