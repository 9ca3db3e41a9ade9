package currency

import (
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders the amount as the currency's display string: symbol,
// thousands-grouped whole amount, fixed decimals, with trailing fractional
// zeros and a trailing decimal point stripped.
func (p Profile) FormatAmount(amount float64) string {
	rounded := math.Round(amount)
	text := strconv.FormatFloat(rounded, 'f', p.Decimals, 64)

	whole, frac, hasFrac := strings.Cut(text, ".")
	whole = groupThousands(whole)

	if hasFrac {
		frac = strings.TrimRight(frac, "0")
		if frac != "" {
			whole += "." + frac
		}
	}
	return p.Symbol + whole
}

// groupThousands inserts comma separators into a decimal integer string.
func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
