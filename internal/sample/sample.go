// Package sample ships placeholder data contexts and starter templates
// per voucher type. Previews fall back to these when the caller supplies
// no data, and the store seeds new organizations from the templates.
package sample

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed contexts/*.yaml templates/*.tpl
var assets embed.FS

// VoucherTypes returns the voucher types with embedded sample data,
// sorted by name.
func VoucherTypes() []string {
	entries, err := assets.ReadDir("contexts")
	if err != nil {
		return nil
	}
	types := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		types = append(types, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(types)
	return types
}

// Context returns the placeholder data context for a voucher type.
func Context(voucherType string) (map[string]any, error) {
	raw, err := assets.ReadFile("contexts/" + voucherType + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("sample: unknown voucher type %q", voucherType)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("sample: decode context for %q: %w", voucherType, err)
	}
	return data, nil
}

// Template returns the starter template source for a voucher type.
func Template(voucherType string) (string, error) {
	raw, err := assets.ReadFile("templates/" + voucherType + ".tpl")
	if err != nil {
		return "", fmt.Errorf("sample: no starter template for %q", voucherType)
	}
	return string(raw), nil
}
