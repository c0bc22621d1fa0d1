package numwords

import "testing"

func TestAmountInWords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0.00", "Rupees Zero Only"},
		{"whole rupees", "100", "Rupees One Hundred Only"},
		{"thousands with paise", "1,234.50", "Rupees One Thousand Two Hundred Thirty Four and Fifty Paise Only"},
		{"paise only when nonzero", "1,234.00", "Rupees One Thousand Two Hundred Thirty Four Only"},
		{"teens", "18.05", "Rupees Eighteen and Five Paise Only"},
		{"lakh grouping", "5,43,210", "Rupees Five Lakh Forty Three Thousand Two Hundred Ten Only"},
		{"crore grouping", "1,23,45,678.90", "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight and Ninety Paise Only"},
		{"crore overflow recurses", "250,00,00,000", "Rupees Two Hundred Fifty Crore Only"},
		{"rounding carries into rupees", "9.999", "Rupees Ten Only"},
		{"unparseable", "12abc", ""},
		{"negative", "-5", ""},
		{"empty", "  ", ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := AmountInWords(tc.amount); got != tc.want {
				t.Fatalf("AmountInWords(%q) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{42, "Forty Two"},
		{100, "One Hundred"},
		{305, "Three Hundred Five"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{99_999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{1_00_000, "One Lakh"},
		{10_00_000, "Ten Lakh"},
		{1_00_00_000, "One Crore"},
		{12_34_56_789, "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine"},
		{-1, ""},
	}

	for _, tc := range cases {
		if got := Convert(tc.n); got != tc.want {
			t.Fatalf("Convert(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
