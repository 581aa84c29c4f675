package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRupiah renders integer amount with thousand separators.
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRp%s", sign, formatThousand(amount))
}

// ParseRupiahToInt parses "Rp 1.000" or "1,000" into an integer amount of Rupiah.
func ParseRupiahToInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "rp")
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(".", "", ",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid rupiah amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

// SplitCommission divides a booking total into service fee and company
// revenue using an integer percentage rate. Integer division keeps the
// invariant fee+revenue == total exact; the company side absorbs the
// rounding remainder.
func SplitCommission(total int64, ratePercent int64) (fee, revenue int64) {
	if total <= 0 || ratePercent <= 0 {
		return 0, total
	}
	fee = total * ratePercent / 100
	return fee, total - fee
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
