// Package format holds the display formatting used on the printed form:
// VND currency, DD/MM/YYYY dates and human-readable byte sizes.
package format

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vi = message.NewPrinter(language.Vietnamese)

// VND renders an amount with Vietnamese digit grouping and the đồng sign,
// e.g. 1234567 -> "1.234.567 ₫". Zero renders as "0 ₫".
func VND(amount int64) string {
	return vi.Sprintf("%d ₫", amount)
}

// Number renders a quantity with Vietnamese digit grouping. Fractional
// quantities keep two decimals, whole ones none.
func Number(n float64) string {
	if n == math.Trunc(n) {
		return vi.Sprintf("%d", int64(n))
	}
	return vi.Sprintf("%.2f", n)
}

// Date converts an ISO calendar date (or RFC3339 timestamp) to DD/MM/YYYY.
// Empty or unparseable input yields the empty string.
func Date(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return ""
}

// ByteSize renders a byte count with 1024-based units and up to two decimal
// places, e.g. 1536 -> "1.5 KB".
func ByteSize(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}

	units := []string{"Bytes", "KB", "MB", "GB"}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}

	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + units[i]
}
