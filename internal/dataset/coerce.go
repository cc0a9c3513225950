package dataset

import (
	"strconv"
	"strings"

	"hoopsight/pkg/contracts/domain"
)

// CoerceFloat parses a raw cell as a floating point number. Empty or
// non numeric cells become the null value instead of an error; cleaning
// decides what nulls mean per column.
func CoerceFloat(cell string) domain.NullFloat {
	s := strings.TrimSpace(cell)
	if s == "" {
		return domain.Null()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Null()
	}
	return domain.Float(v)
}

// ParseMinutes converts a raw MIN cell into fractional minutes. A cell with
// a colon splits on the first colon into a minutes part and a seconds part
// and evaluates to minutes + seconds/60 in floating point, so "5:9" is 5.15
// and "12:30" is exactly 12.5. A cell without a colon coerces as a plain
// number. Any parse failure yields null.
func ParseMinutes(cell string) domain.NullFloat {
	s := strings.TrimSpace(cell)
	minutes, seconds, found := strings.Cut(s, ":")
	if !found {
		return CoerceFloat(s)
	}

	m, err := strconv.ParseFloat(strings.TrimSpace(minutes), 64)
	if err != nil {
		return domain.Null()
	}
	sec, err := strconv.ParseFloat(strings.TrimSpace(seconds), 64)
	if err != nil {
		return domain.Null()
	}
	return domain.Float(m + sec/60)
}
