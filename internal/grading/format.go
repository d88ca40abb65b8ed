package grading

import (
	"math"
	"strconv"
	"strings"
)

// FormatGrade renders value with two decimals. Rounding is half away from zero
// on the shortest decimal representation of value, so 2.345 gives "2.35" even
// though the nearest float64 is slightly below 2.345.
func FormatGrade(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', 2, 64)
	}

	digits := strconv.FormatFloat(math.Abs(value), 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(digits, ".")
	fracPart += "000"

	cents, err := strconv.ParseInt(intPart+fracPart[:2], 10, 64)
	if err != nil {
		// out of int64 range, far outside any grade scale
		return strconv.FormatFloat(value, 'f', 2, 64)
	}
	if fracPart[2] >= '5' {
		cents++
	}

	sign := ""
	if value < 0 && cents != 0 {
		sign = "-"
	}

	return sign + strconv.FormatInt(cents/100, 10) + "." + leftPad2(cents%100)
}

func leftPad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// RoundTo rounds value half away from zero to the given number of decimals.
func RoundTo(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}
