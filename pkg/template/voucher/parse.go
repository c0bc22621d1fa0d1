package voucher

import (
	"fmt"
	"strings"
)

// Issue records malformed markup the parser degraded to literal text.
// Parsing never fails; issues exist so template-authoring surfaces can
// show feedback that the render path deliberately swallows.
type Issue struct {
	Pos     int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("offset %d: %s", i.Pos, i.Message)
}

// Template is a parsed voucher template, ready for repeated rendering.
type Template struct {
	nodes  []node
	source string

	// Issues lists markup problems found during parsing.
	Issues []Issue
}

// Source returns the original template text.
func (t *Template) Source() string { return t.source }

// Render evaluates the template against data. It never fails and never
// mutates data; missing values degrade per the package contract.
func (t *Template) Render(data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	var sb strings.Builder
	sb.Grow(len(t.source))
	sc := rootScope(data)
	for _, n := range t.nodes {
		n.render(&sb, sc)
	}
	return sb.String()
}

// Parse builds the template AST. It always succeeds: tags that do not
// parse, stray end tags, and blocks left open at end of input become
// literal text and are reported through Template.Issues.
func Parse(source string) *Template {
	p := &parser{template: &Template{source: source}}
	p.stack = []*frame{{kind: frameRoot}}
	p.run(source)
	p.template.nodes = p.unwind()
	return p.template
}

type frameKind int

const (
	frameRoot frameKind = iota
	frameLoop
	frameCond
)

type frame struct {
	kind  frameKind
	nodes []node

	// loop fields
	item   string
	source string

	// cond fields
	current  condition
	branches []branch
	inElse   bool
	elseBody []node

	openRaw string
	openPos int
}

type parser struct {
	template *Template
	stack    []*frame
}

func (p *parser) top() *frame { return p.stack[len(p.stack)-1] }

func (p *parser) emit(n node) {
	top := p.top()
	top.nodes = append(top.nodes, n)
}

func (p *parser) issue(pos int, format string, args ...any) {
	p.template.Issues = append(p.template.Issues, Issue{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parser) run(source string) {
	pos := 0
	for pos < len(source) {
		openTag := strings.Index(source[pos:], "{%")
		openVar := strings.Index(source[pos:], "{{")

		next, isTag := openVar, false
		if openTag >= 0 && (openVar < 0 || openTag < openVar) {
			next, isTag = openTag, true
		}
		if next < 0 {
			p.emit(textNode{text: source[pos:]})
			return
		}
		next += pos

		if next > pos {
			p.emit(textNode{text: source[pos:next]})
		}

		if isTag {
			end := strings.Index(source[next:], "%}")
			if end < 0 {
				p.issue(next, "unterminated tag")
				p.emit(textNode{text: source[next:]})
				return
			}
			end += next + 2
			p.handleTag(source[next:end], next)
			pos = end
			continue
		}

		end := strings.Index(source[next:], "}}")
		if end < 0 {
			p.issue(next, "unterminated variable")
			p.emit(textNode{text: source[next:]})
			return
		}
		end += next + 2
		raw := source[next:end]
		path := strings.TrimSpace(raw[2 : len(raw)-2])
		if path == "" {
			p.emit(textNode{text: raw})
		} else {
			p.emit(varNode{path: path, raw: raw})
		}
		pos = end
	}
}

func (p *parser) handleTag(raw string, pos int) {
	content := strings.TrimSpace(raw[2 : len(raw)-2])
	keyword, rest, _ := strings.Cut(content, " ")
	rest = strings.TrimSpace(rest)

	switch keyword {
	case "for":
		fields := strings.Fields(rest)
		if len(fields) != 3 || fields[1] != "in" {
			p.issue(pos, "malformed for tag %q", content)
			p.emit(textNode{text: raw})
			return
		}
		p.stack = append(p.stack, &frame{
			kind:    frameLoop,
			item:    fields[0],
			source:  fields[2],
			openRaw: raw,
			openPos: pos,
		})

	case "endfor":
		top := p.top()
		if top.kind != frameLoop {
			p.issue(pos, "stray endfor")
			p.emit(textNode{text: raw})
			return
		}
		p.stack = p.stack[:len(p.stack)-1]
		p.emit(loopNode{item: top.item, source: top.source, body: top.nodes})

	case "if":
		p.stack = append(p.stack, &frame{
			kind:    frameCond,
			current: parseCondition(rest),
			openRaw: raw,
			openPos: pos,
		})

	case "elif":
		top := p.top()
		if top.kind != frameCond || top.inElse {
			p.issue(pos, "stray elif")
			p.emit(textNode{text: raw})
			return
		}
		top.branches = append(top.branches, branch{cond: top.current, body: top.nodes})
		top.current = parseCondition(rest)
		top.nodes = nil

	case "else":
		top := p.top()
		if top.kind != frameCond || top.inElse {
			p.issue(pos, "stray else")
			p.emit(textNode{text: raw})
			return
		}
		top.branches = append(top.branches, branch{cond: top.current, body: top.nodes})
		top.inElse = true
		top.nodes = nil

	case "endif":
		top := p.top()
		if top.kind != frameCond {
			p.issue(pos, "stray endif")
			p.emit(textNode{text: raw})
			return
		}
		p.stack = p.stack[:len(p.stack)-1]
		if top.inElse {
			top.elseBody = top.nodes
		} else {
			top.branches = append(top.branches, branch{cond: top.current, body: top.nodes})
		}
		p.emit(condNode{branches: top.branches, elseBody: top.elseBody})

	default:
		p.issue(pos, "unknown tag %q", keyword)
		p.emit(textNode{text: raw})
	}
}

// unwind flattens blocks still open at end of input: the opening tag comes
// back as literal text followed by whatever the block had collected.
func (p *parser) unwind() []node {
	for len(p.stack) > 1 {
		top := p.top()
		p.stack = p.stack[:len(p.stack)-1]

		switch top.kind {
		case frameLoop:
			p.issue(top.openPos, "unterminated for block")
		case frameCond:
			p.issue(top.openPos, "unterminated if block")
		}

		flat := []node{textNode{text: top.openRaw}}
		for _, br := range top.branches {
			flat = append(flat, br.body...)
		}
		flat = append(flat, top.nodes...)

		parent := p.top()
		parent.nodes = append(parent.nodes, flat...)
	}
	return p.stack[0].nodes
}
