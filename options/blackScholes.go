package options

import (
	"math"

	"github.com/chobie/go-gaussian"
	"github.com/tantralabs/theo/models"
)

var norm = gaussian.NewGaussian(0, 1)

func calcD1(spot, strike, rate, volatility, maturity float64) float64 {
	return (math.Log(spot/strike) + (rate+math.Pow(volatility, 2)/2)*maturity) / (volatility * math.Sqrt(maturity))
}

func calcD2(spot, strike, rate, volatility, maturity float64) float64 {
	return calcD1(spot, strike, rate, volatility, maturity) - volatility*math.Sqrt(maturity)
}

// BlackScholesCall is the closed-form European call value, the continuous-time
// limit of a European call lattice.
func BlackScholesCall(spot, strike, rate, volatility, maturity float64) float64 {
	td1 := calcD1(spot, strike, rate, volatility, maturity)
	td2 := calcD2(spot, strike, rate, volatility, maturity)
	return spot*norm.Cdf(td1) - strike*math.Exp(-rate*maturity)*norm.Cdf(td2)
}

// BlackScholes values a European option; the put comes from put-call parity.
func BlackScholes(kind models.OptionKind, spot, strike, rate, volatility, maturity float64) float64 {
	c := BlackScholesCall(spot, strike, rate, volatility, maturity)
	if kind == models.Put {
		return c + strike*math.Exp(-rate*maturity) - spot
	}
	return c
}

// BlackScholesDelta is the change in theo wrt. a 1 unit change in spot.
func BlackScholesDelta(kind models.OptionKind, spot, strike, rate, volatility, maturity float64) float64 {
	td1 := calcD1(spot, strike, rate, volatility, maturity)
	if kind == models.Put {
		return norm.Cdf(td1) - 1
	}
	return norm.Cdf(td1)
}

// DigitalDelta is the spot sensitivity of a cash-or-nothing call paying 1.
func DigitalDelta(spot, strike, rate, volatility, maturity float64) float64 {
	td2 := calcD2(spot, strike, rate, volatility, maturity)
	return math.Exp(-rate*maturity) * norm.Pdf(td2) / (spot * volatility * math.Sqrt(maturity))
}
