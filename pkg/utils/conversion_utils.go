package utils

import (
	"math"
	"strconv"
)

// Int64ToStr converts an int64 to its string representation.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}

// StrToInt64 converts a string to an int64.
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// RoundCents rounds an amount to two decimal places, half away from zero.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
