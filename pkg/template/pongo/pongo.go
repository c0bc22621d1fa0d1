// Package pongo adapts a pongo2 template set to the template.Engine seam.
// It exists for templates authored in full Jinja syntax rather than the
// voucher mini-language; the preview pipeline selects it by name.
package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/billcraft/printgen/pkg/template"
)

// Option configures the engine before construction.
type Option func(*Engine)

// WithGlobals seeds context values available to every template.
func WithGlobals(data map[string]any) Option {
	return func(e *Engine) {
		for key, value := range data {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			e.set.Globals[key] = value
		}
	}
}

// WithFilter registers a template filter when the engine is built.
// Registration errors surface from New.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(e *Engine) {
		if err := registerFilter(name, fn); err != nil {
			e.initErr = errors.Join(e.initErr, err)
		}
	}
}

// Engine renders pongo2 template strings.
type Engine struct {
	mu      sync.Mutex
	set     *pongo2.TemplateSet
	cache   map[string]*pongo2.Template
	initErr error
}

var _ template.Engine = (*Engine)(nil)

// New builds a pongo2-backed engine.
func New(options ...Option) (*Engine, error) {
	// NewSet refuses zero loaders. Compilation happens via FromString
	// only; the filesystem loader serves {% include %} paths relative to
	// the working directory.
	loader := pongo2.MustNewLocalFileSystemLoader("")
	e := &Engine{
		set:   pongo2.NewSet("printgen", loader),
		cache: make(map[string]*pongo2.Template),
	}
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.initErr != nil {
		return nil, fmt.Errorf("pongo: %w", e.initErr)
	}
	return e, nil
}

// Name implements template.Engine.
func (*Engine) Name() string { return "pongo" }

// RenderString implements template.Engine. Unlike the voucher engine,
// pongo2 reports parse and execution failures as errors.
func (e *Engine) RenderString(templateContent string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}

	tmpl, err := e.compile(templateContent)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template: %w", err)
	}

	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = value
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template: %w", err)
	}
	return buf.String(), nil
}

func (e *Engine) compile(content string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[content]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return nil, err
	}
	e.cache[content] = tmpl
	return tmpl, nil
}

func registerFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return nil
	}
	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "printgen_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
	return pongo2.RegisterFilter(name, filter)
}
