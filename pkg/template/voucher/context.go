package voucher

import (
	"encoding/json"
	"strconv"
	"strings"
)

// scope is one frame of the lookup chain. Loop bodies evaluate in a child
// scope holding the loop variable and the `loop` binding; everything else
// falls through to the parent and ultimately the root data context.
type scope struct {
	vars   map[string]any
	parent *scope
}

func rootScope(data map[string]any) *scope {
	return &scope{vars: data}
}

func (s *scope) child(vars map[string]any) *scope {
	return &scope{vars: vars, parent: s}
}

// resolve walks a dotted path. The first segment is looked up through the
// scope chain; remaining segments descend key by key, short-circuiting to
// a miss on any non-object intermediate.
func (s *scope) resolve(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}

	parts := strings.Split(path, ".")
	current, ok := s.lookup(parts[0])
	if !ok {
		return nil, false
	}

	for _, part := range parts[1:] {
		obj, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func (s *scope) lookup(key string) (any, bool) {
	for frame := s; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// root returns the outermost data context, used by loop sources that fall
// back to the known top-level array names.
func (s *scope) root() map[string]any {
	frame := s
	for frame.parent != nil {
		frame = frame.parent
	}
	return frame.vars
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// stringify renders a resolved value into output text. Numbers never use
// exponent notation; nil renders empty.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
