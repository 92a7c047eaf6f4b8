package montecarlo

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tantralabs/theo/logger"
	"github.com/tantralabs/theo/models"
)

// Payoff selects the claim whose hedge ratio is estimated.
type Payoff string

const (
	PutPayoff     Payoff = "put"     // max(K - S_T, 0)
	DigitalPayoff Payoff = "digital" // 1 if S_T > K
)

type HedgeParams struct {
	Spot        float64
	Strike      float64
	Rate        float64
	Volatility  float64
	Maturity    float64 // Years
	Payoff      Payoff
	Epsilon     float64 // Spot bump
	Paths       int     // Draws per valuation
	Repetitions int     // Independent delta estimates to average
	CommonSeed  bool    // Value bumped and unbumped prices on the same draws
	Seed        int64
}

// HedgeEstimate is the mean of Repetitions finite-difference deltas.
type HedgeEstimate struct {
	Delta   float64
	StdDev  float64 // Dispersion across repetitions
	Samples []float64
}

func (p HedgeParams) Validate() error {
	if err := (market{p.Spot, p.Strike, p.Rate, p.Volatility, p.Maturity}).validate(); err != nil {
		return err
	}
	if p.Payoff != PutPayoff && p.Payoff != DigitalPayoff {
		return fmt.Errorf("%w: unknown payoff %q", models.ErrInvalidParameter, p.Payoff)
	}
	if !(p.Epsilon > 0) || math.IsInf(p.Epsilon, 0) {
		return fmt.Errorf("%w: epsilon must be positive, got %v", models.ErrInvalidParameter, p.Epsilon)
	}
	if err := positive("paths", p.Paths); err != nil {
		return err
	}
	return positive("repetitions", p.Repetitions)
}

// Hedge estimates dV/dS by bump-and-revalue: (V(S+eps) - V(S)) / eps. Terminal
// prices are sampled exactly from the lognormal distribution at maturity.
func Hedge(p HedgeParams) (HedgeEstimate, error) {
	if err := p.Validate(); err != nil {
		return HedgeEstimate{}, err
	}
	seeds := rand.New(rand.NewSource(p.Seed))
	samples := make([]float64, p.Repetitions)
	for i := range samples {
		bumpedSeed := seeds.Int63()
		unbumpedSeed := bumpedSeed
		if !p.CommonSeed {
			unbumpedSeed = seeds.Int63()
		}
		bumped := p.value(p.Spot+p.Epsilon, rand.New(rand.NewSource(bumpedSeed)))
		unbumped := p.value(p.Spot, rand.New(rand.NewSource(unbumpedSeed)))
		samples[i] = (bumped - unbumped) / p.Epsilon
	}
	est := HedgeEstimate{
		Delta:   floats.Sum(samples) / float64(len(samples)),
		Samples: samples,
	}
	if len(samples) > 1 {
		est.StdDev = stat.StdDev(samples, nil)
	}
	logger.Debugf("Hedge %v (common seed %v, eps %v): %v +/- %v", p.Payoff, p.CommonSeed, p.Epsilon, est.Delta, est.StdDev)
	return est, nil
}

// value is the discounted mean payoff over Paths terminal draws from spot.
func (p HedgeParams) value(spot float64, rng *rand.Rand) float64 {
	drift := (p.Rate - 0.5*p.Volatility*p.Volatility) * p.Maturity
	diffusion := p.Volatility * math.Sqrt(p.Maturity)
	sum := 0.
	for i := 0; i < p.Paths; i++ {
		st := spot * math.Exp(drift+diffusion*rng.NormFloat64())
		if p.Payoff == DigitalPayoff {
			sum += models.DigitalValue(p.Strike, st)
		} else {
			sum += models.ExpiryValue(models.Put, p.Strike, st)
		}
	}
	return math.Exp(-p.Rate*p.Maturity) * sum / float64(p.Paths)
}
