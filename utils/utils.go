package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round round a number to a decimal place
func Round(x, decimal float64) float64 {
	return math.Round(x/decimal) * decimal
}

func RoundToNearest(num float64, interval float64) float64 {
	return math.Round(num/interval) * interval
}

// ToFixed rounds half away from zero on the decimal representation of num.
func ToFixed(num float64, precision int) float64 {
	f, _ := decimal.NewFromFloat(num).Round(int32(precision)).Float64()
	return f
}

// Arange returns min, min+step, ... up to and including max (within half a step).
func Arange(min float64, max float64, step float64) []float64 {
	if step <= 0 || max < min {
		return nil
	}
	a := make([]float64, int(math.Floor((max-min)/step+0.5))+1)
	for i := range a {
		a[i] = min + float64(i)*step
	}
	return a
}
