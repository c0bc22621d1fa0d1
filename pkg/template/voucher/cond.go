package voucher

import "strings"

// condition is the tagged representation of the boolean expression shapes
// templates use. A small parser produces these instead of the historical
// substring dispatch, but the recognised shapes are unchanged: equality
// against a quoted literal, `and` conjunction, the `!= 'NONE'` guard, and
// bare dotted-path truthiness.
type condition interface {
	eval(sc *scope) bool
}

// parseCondition splits on ` and ` first so each conjunct can carry its
// own comparison, then classifies the atom.
func parseCondition(text string) condition {
	text = strings.TrimSpace(text)
	if text == "" {
		return condTruthy{}
	}

	if strings.Contains(text, " and ") {
		parts := strings.Split(text, " and ")
		conj := condConjunction{terms: make([]condition, 0, len(parts))}
		for _, part := range parts {
			conj.terms = append(conj.terms, parseAtom(part))
		}
		return conj
	}
	return parseAtom(text)
}

func parseAtom(text string) condition {
	text = strings.TrimSpace(text)

	if left, right, ok := strings.Cut(text, " == "); ok {
		return condEquality{
			path:    strings.TrimSpace(left),
			literal: stripQuotes(strings.TrimSpace(right)),
		}
	}

	if strings.Contains(text, "!= 'NONE'") {
		name, _, _ := strings.Cut(text, " ")
		return condNotNone{path: name}
	}

	return condTruthy{path: text}
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// condEquality tests the resolved path against a string literal. Matching
// is strict: only string values can equal a string literal.
type condEquality struct {
	path    string
	literal string
}

func (c condEquality) eval(sc *scope) bool {
	value, ok := sc.resolve(c.path)
	if !ok {
		return false
	}
	s, isString := value.(string)
	return isString && s == c.literal
}

type condConjunction struct {
	terms []condition
}

func (c condConjunction) eval(sc *scope) bool {
	for _, term := range c.terms {
		if !term.eval(sc) {
			return false
		}
	}
	return len(c.terms) > 0
}

// condNotNone requires the path to resolve truthy and not be the literal
// string "NONE", which templates use as an explicit opt-out marker.
type condNotNone struct {
	path string
}

func (c condNotNone) eval(sc *scope) bool {
	value, ok := sc.resolve(c.path)
	if !ok {
		return false
	}
	return truthy(value) && stringify(value) != "NONE"
}

type condTruthy struct {
	path string
}

func (c condTruthy) eval(sc *scope) bool {
	value, ok := sc.resolve(c.path)
	if !ok {
		return false
	}
	return truthy(value)
}
