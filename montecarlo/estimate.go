// Package montecarlo holds the simulation estimators used alongside the lattice:
// European pricing on Euler-discretized GBM paths, bump-and-revalue hedge ratios
// and the arithmetic Asian call.
package montecarlo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tantralabs/theo/models"
)

// z95 is the two-sided 95% standard normal quantile.
const z95 = 1.96

// Estimate summarizes the discounted payoffs of a simulation.
type Estimate struct {
	Mean   float64
	StdDev float64 // Sample standard deviation of the discounted payoffs
	StdErr float64
	Lower  float64 // 95% confidence bounds on Mean
	Upper  float64
	Paths  int
}

func summarize(samples []float64) Estimate {
	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) < 2 {
		std = 0
	}
	se := std / math.Sqrt(float64(len(samples)))
	return Estimate{
		Mean:   mean,
		StdDev: std,
		StdErr: se,
		Lower:  mean - z95*se,
		Upper:  mean + z95*se,
		Paths:  len(samples),
	}
}

type market struct {
	spot, strike, rate, volatility, maturity float64
}

func (m market) validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"spot", m.spot},
		{"strike", m.strike},
		{"rate", m.rate},
		{"volatility", m.volatility},
		{"maturity", m.maturity},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", models.ErrInvalidParameter, f.name, f.value)
		}
	}
	switch {
	case m.spot <= 0:
		return fmt.Errorf("%w: spot must be positive, got %v", models.ErrInvalidParameter, m.spot)
	case m.strike <= 0:
		return fmt.Errorf("%w: strike must be positive, got %v", models.ErrInvalidParameter, m.strike)
	case m.maturity <= 0:
		return fmt.Errorf("%w: maturity must be positive, got %v", models.ErrInvalidParameter, m.maturity)
	case m.volatility < 0:
		return fmt.Errorf("%w: volatility must not be negative, got %v", models.ErrInvalidParameter, m.volatility)
	}
	return nil
}

func positive(name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", models.ErrInvalidParameter, name, n)
	}
	return nil
}
