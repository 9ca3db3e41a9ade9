package currency

import "testing"

func TestFormatAmount(t *testing.T) {
	usd := Profile{Code: "USD", Symbol: "$", Decimals: 0}
	eur := Profile{Code: "EUR", Symbol: "€", Decimals: 2}

	tests := []struct {
		name    string
		profile Profile
		amount  float64
		want    string
	}{
		{"whole dollars", usd, 100, "$100"},
		{"rounds half up", usd, 744.8, "$745"},
		{"rounds down", usd, 99.4, "$99"},
		{"thousands grouping", usd, 1234567, "$1,234,567"},
		{"trailing zeros stripped", eur, 90, "€90"},
		{"rounded then stripped", eur, 1234.6, "€1,235"},
		{"zero", usd, 0, "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.FormatAmount(tt.amount); got != tt.want {
				t.Errorf("FormatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
	}

	for _, tt := range tests {
		if got := groupThousands(tt.in); got != tt.want {
			t.Errorf("groupThousands(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
