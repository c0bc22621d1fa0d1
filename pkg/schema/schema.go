// Package schema validates voucher data contexts against the embedded
// OpenAPI description of the preview payload. Validation is advisory: the
// render path never rejects a context, but the admin API surfaces issues
// so template authors learn about shape mismatches before printing.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed voucher_context.yaml
var contextSchemaYAML []byte

const contextSchemaName = "VoucherContext"

// Issue is a single advisory validation finding.
type Issue struct {
	// Path is the dotted location inside the data context, empty for
	// document-level findings.
	Path string `json:"path"`

	// Message describes the mismatch.
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Validator checks data contexts against the voucher context schema.
type Validator struct {
	schema *openapi3.Schema
}

// NewValidator loads the embedded schema document.
func NewValidator() (*Validator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contextSchemaYAML)
	if err != nil {
		return nil, fmt.Errorf("schema: load context schema: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("schema: invalid context schema: %w", err)
	}

	ref := doc.Components.Schemas[contextSchemaName]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema: schema %q not found in document", contextSchemaName)
	}
	return &Validator{schema: ref.Value}, nil
}

// Validate reports advisory issues for data. A nil or empty slice means
// the context matches the documented shape.
func (v *Validator) Validate(data map[string]any) []Issue {
	if v == nil || v.schema == nil {
		return nil
	}

	err := v.schema.VisitJSON(normalize(data), openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	return collectIssues(err)
}

func collectIssues(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, sub := range multi {
			out = append(out, collectIssues(sub)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{{
			Path:    strings.Join(schemaErr.JSONPointer(), "."),
			Message: schemaErr.Reason,
		}}
	}
	return []Issue{{Message: err.Error()}}
}

// normalize rewrites Go-typed values into the JSON shapes VisitJSON
// expects, so contexts assembled in code validate the same way as
// contexts decoded from request bodies.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = normalize(m)
		}
		return out
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}
