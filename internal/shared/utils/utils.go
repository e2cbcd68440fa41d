package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TrimmedPtr returns nil for nil or whitespace-only input, otherwise a pointer
// to the trimmed value.
func TrimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// AverageRating rounds sum/count half-up to two decimals. Returns nil for count 0.
func AverageRating(sum, count int64) *decimal.Decimal {
	if count == 0 {
		return nil
	}
	avg := decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(count), 2)
	return &avg
}
