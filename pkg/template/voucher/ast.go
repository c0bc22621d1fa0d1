package voucher

import (
	"reflect"
	"strings"
)

type node interface {
	render(sb *strings.Builder, sc *scope)
}

// textNode is literal template text, including any malformed markup the
// parser decided to pass through unchanged.
type textNode struct {
	text string
}

func (n textNode) render(sb *strings.Builder, _ *scope) {
	sb.WriteString(n.text)
}

// varNode is a `{{dotted.path}}` occurrence. raw keeps the original
// source slice so unresolved paths can be re-emitted verbatim.
type varNode struct {
	path string
	raw  string
}

func (n varNode) render(sb *strings.Builder, sc *scope) {
	value, ok := sc.resolve(n.path)
	if !ok {
		sb.WriteString(n.raw)
		return
	}
	sb.WriteString(stringify(value))
}

// knownArrays are the top-level context arrays a loop source may name
// even when template authors spell them without a qualifying path.
var knownArrays = map[string]struct{}{
	"tax_summary":      {},
	"terms_conditions": {},
	"payment_methods":  {},
	"invoice_items":    {},
}

type loopNode struct {
	item   string
	source string
	body   []node
}

func (n loopNode) render(sb *strings.Builder, sc *scope) {
	items, ok := n.resolveSource(sc)
	if !ok {
		return
	}
	for i, element := range items {
		frame := sc.child(map[string]any{
			n.item: element,
			"loop": map[string]any{"index": i + 1},
		})
		for _, child := range n.body {
			child.render(sb, frame)
		}
	}
}

func (n loopNode) resolveSource(sc *scope) ([]any, bool) {
	value, ok := sc.resolve(n.source)
	if !ok {
		if _, known := knownArrays[n.source]; known {
			value, ok = sc.root()[n.source]
		}
		if !ok {
			return nil, false
		}
	}
	return asSlice(value)
}

func asSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, true
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

type branch struct {
	cond condition
	body []node
}

type condNode struct {
	branches []branch
	elseBody []node
}

func (n condNode) render(sb *strings.Builder, sc *scope) {
	for _, br := range n.branches {
		if br.cond.eval(sc) {
			for _, child := range br.body {
				child.render(sb, sc)
			}
			return
		}
	}
	for _, child := range n.elseBody {
		child.render(sb, sc)
	}
}
