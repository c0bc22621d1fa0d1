package preview

import (
	"strconv"

	"github.com/billcraft/printgen/pkg/numwords"
)

const (
	flagAmountInWords = "show_amount_in_words"
	totalsKey         = "totals"
	totalAmountKey    = "total_amount"
	amountInWordsKey  = "amount_in_words"
)

// BuildContext returns the render-ready context for data: a deep copy with
// derived fields filled in. The caller's map is never written to; the
// historical renderer mutated it in place and that behavior is
// deliberately gone.
//
// Derivation: when `show_amount_in_words` is truthy at the root and
// `totals.total_amount` is present, `totals.amount_in_words` is set on the
// copy. Unparseable amounts derive to "" the same way the words helper
// degrades everywhere else.
func BuildContext(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}

	merged := copyMap(data)

	if !flagSet(merged, flagAmountInWords) {
		return merged
	}
	totals, ok := merged[totalsKey].(map[string]any)
	if !ok {
		return merged
	}
	amount, ok := totals[totalAmountKey]
	if !ok {
		return merged
	}
	totals[amountInWordsKey] = numwords.AmountInWords(amountText(amount))
	return merged
}

func flagSet(data map[string]any, key string) bool {
	switch v := data[key].(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false" && v != "0"
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

func amountText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return copyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, m := range v {
			out[i] = copyMap(m)
		}
		return out
	default:
		return v
	}
}
