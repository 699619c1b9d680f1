package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts throughout the service are whole thousand-VND units: a price of 30
// means 30.000 VNĐ on the wire and on screen.

var thousand = decimal.NewFromInt(1000)

// ToVND expands a thousand-unit amount into full VND.
func ToVND(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Mul(thousand)
}

// FormatVND renders a thousand-unit amount with dot grouping and the currency
// suffix, e.g. 30 -> "30.000 VNĐ", 1234 -> "1.234.000 VNĐ".
func FormatVND(amount int64) string {
	full := ToVND(amount)
	return groupDigits(full.String()) + " VNĐ"
}

func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}
