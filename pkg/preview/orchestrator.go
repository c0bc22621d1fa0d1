// Package preview coordinates the full voucher preview pipeline: advisory
// context validation, derived-field computation, template engine
// selection, and document rendering.
package preview

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/billcraft/printgen/pkg/render"
	"github.com/billcraft/printgen/pkg/renderers/htmldoc"
	"github.com/billcraft/printgen/pkg/renderers/textdoc"
	"github.com/billcraft/printgen/pkg/schema"
	"github.com/billcraft/printgen/pkg/template"
	"github.com/billcraft/printgen/pkg/template/pongo"
	"github.com/billcraft/printgen/pkg/template/voucher"
)

const (
	defaultEngineName   = "voucher"
	defaultRendererName = "html"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithEngine registers an additional template engine, replacing any
// previously registered engine of the same name.
func WithEngine(engine template.Engine) Option {
	return func(o *Orchestrator) {
		if engine == nil {
			return
		}
		o.engines[engine.Name()] = engine
	}
}

// WithRegistry injects a document renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithValidator injects a context validator. Pass nil to disable advisory
// validation entirely.
func WithValidator(validator *schema.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
		o.validatorSpecified = true
	}
}

// WithDefaultEngine overrides the engine used when a request omits one.
func WithDefaultEngine(name string) Option {
	return func(o *Orchestrator) {
		o.defaultEngine = name
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// Orchestrator runs previews. It applies sensible defaults (voucher and
// pongo engines, html and text document renderers, embedded context
// schema) while remaining open to dependency injection.
type Orchestrator struct {
	mu                 sync.RWMutex
	engines            map[string]template.Engine
	registry           *render.Registry
	validator          *schema.Validator
	validatorSpecified bool
	defaultEngine      string
	defaultRenderer    string
	initErr            error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		engines:         make(map[string]template.Engine),
		defaultEngine:   defaultEngineName,
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if _, ok := o.engines[defaultEngineName]; !ok {
		o.engines[defaultEngineName] = voucher.NewEngine()
	}
	if _, ok := o.engines["pongo"]; !ok {
		eng, err := pongo.New()
		if err != nil {
			o.initErr = fmt.Errorf("preview: init pongo engine: %w", err)
		} else {
			o.engines[eng.Name()] = eng
		}
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	if !o.registry.Has("html") {
		o.registry.MustRegister(htmldoc.New())
	}
	if !o.registry.Has("text") {
		o.registry.MustRegister(textdoc.New())
	}

	if o.validator == nil && !o.validatorSpecified {
		validator, err := schema.NewValidator()
		if err != nil {
			o.initErr = fmt.Errorf("preview: init context validator: %w", err)
			return
		}
		o.validator = validator
	}
}

// Request describes one preview invocation.
type Request struct {
	// Template is the template source text.
	Template string

	// Engine names the template engine ("voucher" when empty).
	Engine string

	// Renderer names the document renderer ("html" when empty).
	Renderer string

	// Data is the voucher data context. It is never mutated.
	Data map[string]any

	// Options carries presentation hints for the document renderer.
	Options render.Options
}

// Result is a finished preview.
type Result struct {
	Document    []byte
	ContentType string

	// Issues are advisory context findings; a non-empty slice does not
	// mean the preview failed.
	Issues []schema.Issue
}

// Preview executes validate -> derive -> render -> wrap and returns the
// final document.
func (o *Orchestrator) Preview(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.initErr != nil {
		return nil, o.initErr
	}

	engineName := req.Engine
	if engineName == "" {
		engineName = o.defaultEngine
	}
	o.mu.RLock()
	engine, ok := o.engines[engineName]
	o.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("preview: engine %q not found", engineName)
	}

	rendererName := req.Renderer
	if rendererName == "" {
		rendererName = o.defaultRenderer
	}
	renderer, err := o.registry.Get(rendererName)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}

	var issues []schema.Issue
	if o.validator != nil {
		issues = o.validator.Validate(req.Data)
	}

	body, err := engine.RenderString(req.Template, BuildContext(req.Data))
	if err != nil {
		return nil, fmt.Errorf("preview: render template: %w", err)
	}

	document, err := renderer.Render(ctx, body, req.Options)
	if err != nil {
		return nil, fmt.Errorf("preview: render document: %w", err)
	}

	return &Result{
		Document:    document,
		ContentType: renderer.ContentType(),
		Issues:      issues,
	}, nil
}

// Engines returns the sorted names of registered template engines.
func (o *Orchestrator) Engines() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	names := make([]string, 0, len(o.engines))
	for name := range o.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Renderers returns the sorted names of registered document renderers.
func (o *Orchestrator) Renderers() []string {
	return o.registry.List()
}
