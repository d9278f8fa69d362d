package action

import (
	"strings"

	"github.com/spf13/cast"
)

// Params holds resolved user input for a sequence. Keys may address nested
// maps with dotted paths ("project.path").
type Params map[string]any

// Get returns the value at a dotted path, or nil.
func (p Params) Get(path string) any {
	v, _ := lookup(map[string]any(p), path)
	return v
}

// Has reports whether a dotted path is set.
func (p Params) Has(path string) bool {
	_, ok := lookup(map[string]any(p), path)
	return ok
}

// Set stores v at a dotted path, creating intermediate maps as needed.
func (p Params) Set(path string, v any) {
	parts := strings.Split(path, ".")
	cur := map[string]any(p)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(cur[part])
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

// Delete removes the value at a dotted path.
func (p Params) Delete(path string) {
	parts := strings.Split(path, ".")
	cur := map[string]any(p)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(cur[part])
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, parts[len(parts)-1])
}

// String returns the value at path coerced to a string.
func (p Params) String(path string) string {
	return cast.ToString(p.Get(path))
}

// StringOr returns the string at path, or def when it is unset or empty.
func (p Params) StringOr(path, def string) string {
	if s := p.String(path); s != "" {
		return s
	}
	return def
}

// Bool returns the value at path coerced to a bool ("y", "yes" count as true).
func (p Params) Bool(path string) bool {
	switch v := p.Get(path).(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes":
			return true
		}
	}
	return cast.ToBool(p.Get(path))
}

// Int returns the value at path coerced to an int.
func (p Params) Int(path string) int {
	return cast.ToInt(p.Get(path))
}

// Strings returns the value at path coerced to a string slice.
func (p Params) Strings(path string) []string {
	return cast.ToStringSlice(p.Get(path))
}

// With returns a shallow copy of p with overrides applied on top.
func (p Params) With(overrides Params) Params {
	out := make(Params, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func lookup(m map[string]any, path string) (any, bool) {
	if m == nil {
		return nil, false
	}
	parts := strings.Split(path, ".")
	var cur any = m
	for _, part := range parts {
		mm, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = mm[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Params:
		return map[string]any(m), true
	default:
		return nil, false
	}
}
