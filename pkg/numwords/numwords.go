// Package numwords renders currency amounts as English words using the
// Indian numbering convention (thousand, lakh, crore).
package numwords

import (
	"math"
	"strconv"
	"strings"
)

const (
	thousand = 1_000
	lakh     = 100_000
	crore    = 10_000_000
)

var ones = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords converts a decimal amount string (comma thousands separators
// allowed) into its long form, e.g. "Rupees One Thousand Two Hundred Thirty
// Four and Fifty Paise Only". Unparseable or negative input yields "".
func AmountInWords(amount string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
	if cleaned == "" {
		return ""
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return ""
	}

	total := int64(math.Round(value * 100))
	rupees := total / 100
	paise := total % 100

	out := "Rupees " + Convert(rupees)
	if paise > 0 {
		out += " and " + Convert(paise) + " Paise"
	}
	return out + " Only"
}

// Convert renders a non-negative integer using Indian-numbering scale words.
// Zero is the literal word "Zero"; negative input yields "".
func Convert(n int64) string {
	if n < 0 {
		return ""
	}
	if n == 0 {
		return ones[0]
	}

	var parts []string
	if n >= crore {
		parts = append(parts, Convert(n/crore), "Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, twoDigits(n/lakh), "Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, twoDigits(n/thousand), "Thousand")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, threeDigits(n))
	}
	return strings.Join(parts, " ")
}

func threeDigits(n int64) string {
	if n >= 100 {
		out := ones[n/100] + " Hundred"
		if rest := n % 100; rest > 0 {
			out += " " + twoDigits(rest)
		}
		return out
	}
	return twoDigits(n)
}

func twoDigits(n int64) string {
	if n < 20 {
		return ones[n]
	}
	out := tens[n/10]
	if n%10 > 0 {
		out += " " + ones[n%10]
	}
	return out
}
