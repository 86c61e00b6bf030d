package usecase

import (
	"math"
	"strconv"
)

// ValidateAmount checks that the amount string parses to a positive finite
// number. The string itself is never normalized: the gateway hashes it
// verbatim, so "500.00" and "500" are different amounts as far as digests
// are concerned.
func ValidateAmount(amount string) bool {
	if amount == "" {
		return false
	}
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v > 0
}
