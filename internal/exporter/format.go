package exporter

import (
	"strconv"

	"hoopsight/pkg/contracts/domain"
)

// Cell formatting for tabular views. Per-game averages carry two
// decimals so 13.4 renders as 13.40, win percentages keep the
// three-decimal convention standings arrive in.

func avgCell(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func pctCell(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func idCell(i int64) string {
	return strconv.FormatInt(i, 10)
}

// nullCell renders absent per-stat averages as empty cells.
func nullCell(n domain.NullFloat) string {
	if !n.Valid {
		return ""
	}
	return avgCell(n.Float64)
}
