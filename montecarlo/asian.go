package montecarlo

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/tantralabs/theo/logger"
	"github.com/tantralabs/theo/models"
)

type AsianParams struct {
	Spot       float64
	Strike     float64
	Rate       float64
	Volatility float64
	Maturity   float64 // Years
	Steps      int     // Averaging dates, evenly spaced after the start
	Paths      int
	Seed       int64
}

func (p AsianParams) Validate() error {
	if err := (market{p.Spot, p.Strike, p.Rate, p.Volatility, p.Maturity}).validate(); err != nil {
		return err
	}
	if err := positive("steps", p.Steps); err != nil {
		return err
	}
	return positive("paths", p.Paths)
}

// ArithmeticAsianCall prices a call on the arithmetic mean of the path. The
// starting price is not part of the average.
func ArithmeticAsianCall(p AsianParams) (Estimate, error) {
	if err := p.Validate(); err != nil {
		return Estimate{}, err
	}
	rng := rand.New(rand.NewSource(p.Seed))
	dt := p.Maturity / float64(p.Steps)
	drift := math.Exp((p.Rate - 0.5*p.Volatility*p.Volatility) * dt)
	diffusion := p.Volatility * math.Sqrt(dt)
	discount := math.Exp(-p.Rate * p.Maturity)

	path := make([]float64, p.Steps)
	payoffs := make([]float64, p.Paths)
	for i := range payoffs {
		s := p.Spot
		for j := range path {
			s *= drift * math.Exp(diffusion*rng.NormFloat64())
			path[j] = s
		}
		mean := floats.Sum(path) / float64(len(path))
		payoffs[i] = discount * models.ExpiryValue(models.Call, p.Strike, mean)
	}
	est := summarize(payoffs)
	logger.Debugf("Arithmetic Asian call over %v paths x %v steps: %v in [%v, %v]", p.Paths, p.Steps, est.Mean, est.Lower, est.Upper)
	return est, nil
}
