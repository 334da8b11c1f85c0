package format

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatUpvoteCount abbreviates a count: 1500 → "1.5K", 2300000 → "2.3M".
// Ties round up, so 1250 → "1.3K".
func FormatUpvoteCount(count int) string {
	switch {
	case count >= 1_000_000:
		return tenths(count, 1_000_000) + "M"
	case count >= 1_000:
		return tenths(count, 1_000) + "K"
	default:
		return strconv.Itoa(count)
	}
}

// tenths renders count/unit with one decimal, rounding half up.
func tenths(count, unit int) string {
	step := unit / 10
	t := (count + step/2) / step
	return fmt.Sprintf("%d.%d", t/10, t%10)
}

// FormatTotal renders a large total with thousands separators.
func FormatTotal(n int) string {
	return humanize.Comma(int64(n))
}

// FormatBytes renders a byte size, e.g. "83 kB".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
