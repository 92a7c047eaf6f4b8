package montecarlo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tantralabs/theo/logger"
	"github.com/tantralabs/theo/models"
)

type EuropeanParams struct {
	Spot       float64
	Strike     float64
	Rate       float64
	Volatility float64
	Maturity   float64 // Years
	Kind       models.OptionKind
	Steps      int // Euler steps per path
	Paths      int
	Seed       int64
}

func (p EuropeanParams) Validate() error {
	if err := (market{p.Spot, p.Strike, p.Rate, p.Volatility, p.Maturity}).validate(); err != nil {
		return err
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: unknown option kind %q", models.ErrInvalidParameter, p.Kind)
	}
	if err := positive("steps", p.Steps); err != nil {
		return err
	}
	return positive("paths", p.Paths)
}

// European prices a European option by simulating Euler-discretized GBM paths
// under the risk-neutral drift and averaging the discounted payoffs.
func European(p EuropeanParams) (Estimate, error) {
	if err := p.Validate(); err != nil {
		return Estimate{}, err
	}
	rng := rand.New(rand.NewSource(p.Seed))
	dt := p.Maturity / float64(p.Steps)
	sqrtDt := math.Sqrt(dt)
	discount := math.Exp(-p.Rate * p.Maturity)

	payoffs := make([]float64, p.Paths)
	for i := range payoffs {
		s := p.Spot
		for j := 0; j < p.Steps; j++ {
			s += s * (p.Rate*dt + p.Volatility*rng.NormFloat64()*sqrtDt)
		}
		payoffs[i] = discount * models.ExpiryValue(p.Kind, p.Strike, s)
	}
	est := summarize(payoffs)
	logger.Debugf("European %v MC over %v paths x %v steps: %v +/- %v", p.Kind, p.Paths, p.Steps, est.Mean, est.StdErr)
	return est, nil
}
