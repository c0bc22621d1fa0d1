package preview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildContextDerivesAmountInWords(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"show_amount_in_words": true,
		"totals":               map[string]any{"total_amount": "1,234.50"},
	}

	merged := BuildContext(data)

	totals := merged["totals"].(map[string]any)
	want := "Rupees One Thousand Two Hundred Thirty Four and Fifty Paise Only"
	if totals["amount_in_words"] != want {
		t.Fatalf("amount_in_words = %v, want %q", totals["amount_in_words"], want)
	}
}

func TestBuildContextDoesNotMutateCaller(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"show_amount_in_words": true,
		"totals":               map[string]any{"total_amount": "99.00"},
		"invoice_items":        []any{map[string]any{"name": "Pen"}},
	}
	want := map[string]any{
		"show_amount_in_words": true,
		"totals":               map[string]any{"total_amount": "99.00"},
		"invoice_items":        []any{map[string]any{"name": "Pen"}},
	}

	BuildContext(data)

	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("caller data mutated (-want +got):\n%s", diff)
	}
}

func TestBuildContextFlagOff(t *testing.T) {
	t.Parallel()

	merged := BuildContext(map[string]any{
		"totals": map[string]any{"total_amount": "99.00"},
	})
	totals := merged["totals"].(map[string]any)
	if _, ok := totals["amount_in_words"]; ok {
		t.Fatal("amount_in_words derived without flag")
	}
}

func TestBuildContextMissingAmount(t *testing.T) {
	t.Parallel()

	merged := BuildContext(map[string]any{
		"show_amount_in_words": true,
		"totals":               map[string]any{},
	})
	totals := merged["totals"].(map[string]any)
	if _, ok := totals["amount_in_words"]; ok {
		t.Fatal("amount_in_words derived without a total amount")
	}
}

func TestBuildContextUnparseableAmountDerivesEmpty(t *testing.T) {
	t.Parallel()

	merged := BuildContext(map[string]any{
		"show_amount_in_words": true,
		"totals":               map[string]any{"total_amount": "n/a"},
	})
	totals := merged["totals"].(map[string]any)
	if totals["amount_in_words"] != "" {
		t.Fatalf("expected empty words, got %v", totals["amount_in_words"])
	}
}

func TestBuildContextNumericAmount(t *testing.T) {
	t.Parallel()

	merged := BuildContext(map[string]any{
		"show_amount_in_words": true,
		"totals":               map[string]any{"total_amount": 250.0},
	})
	totals := merged["totals"].(map[string]any)
	if totals["amount_in_words"] != "Rupees Two Hundred Fifty Only" {
		t.Fatalf("got %v", totals["amount_in_words"])
	}
}

func TestBuildContextNilData(t *testing.T) {
	t.Parallel()

	if merged := BuildContext(nil); merged == nil || len(merged) != 0 {
		t.Fatalf("expected empty context, got %v", merged)
	}
}
