// Package words renders integer VND amounts as their Vietnamese reading.
package words

import "strings"

// Scale words for each group of three decimal digits, least significant first.
var scales = []string{"", "nghìn", "triệu", "tỷ", "nghìn tỷ", "triệu tỷ", "tỷ tỷ"}

var digits = [...]string{"không", "một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín"}

// 10-19 use the irregular "mười ..." forms, including "mười lăm" for 15.
var teens = [...]string{
	"mười", "mười một", "mười hai", "mười ba", "mười bốn",
	"mười lăm", "mười sáu", "mười bảy", "mười tám", "mười chín",
}

// Currency returns the Vietnamese reading of n followed by the currency unit
// word. Currency(0) is exactly "Không đồng".
func Currency(n int64) string {
	if n <= 0 {
		return "Không đồng"
	}

	var groups []int64
	for v := n; v > 0; v /= 1000 {
		groups = append(groups, v%1000)
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		parts = append(parts, group(int(groups[i])))
		scale := i
		if scale >= len(scales) {
			scale = len(scales) - 1
		}
		if scales[scale] != "" {
			parts = append(parts, scales[scale])
		}
	}

	return strings.Join(parts, " ") + " đồng"
}

// group renders a value in [1, 999] as hundreds, tens and units, applying the
// irregular forms: "mốt" for a trailing 1 after a non-zero tens digit and
// "lẻ" when the tens digit is zero but the units digit is not.
func group(n int) string {
	switch {
	case n < 10:
		return digits[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		s := digits[n/10] + " mươi"
		switch n % 10 {
		case 0:
		case 1:
			s += " mốt"
		default:
			s += " " + digits[n%10]
		}
		return s
	default:
		s := digits[n/100] + " trăm"
		switch r := n % 100; {
		case r == 0:
		case r < 10:
			s += " lẻ " + digits[r]
		default:
			s += " " + group(r)
		}
		return s
	}
}
