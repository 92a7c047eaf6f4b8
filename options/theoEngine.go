package options

import (
	"context"
	"fmt"
	"math"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"

	"github.com/tantralabs/theo/logger"
	"github.com/tantralabs/theo/models"
	"github.com/tantralabs/theo/utils"
)

// Method names a valuation model.
type Method string

const (
	BlackScholesMethod Method = "BlackScholes"
	BinomialTreeMethod Method = "BinomialTree"
)

const DefaultNumStrikes = 10
const DefaultStrikeInterval = 5.
const DefaultConcurrency = 4

// TheoEngine values a chain of strikes around the spot of a base contract.
type TheoEngine struct {
	Base           models.Params
	NumStrikes     int
	StrikeInterval float64
	Concurrency    int
}

// Quote is the valuation of one strike and kind in the chain.
type Quote struct {
	Strike               float64
	Kind                 models.OptionKind
	European             float64 // European lattice value
	American             float64 // American lattice value
	EarlyExercisePremium float64 // American - European
	Oracle               float64 // Black-Scholes value
	Delta                float64 // Root hedge ratio of the European lattice
}

func NewTheoEngine(base models.Params, numStrikes int, strikeInterval float64, concurrency int) (*TheoEngine, error) {
	if numStrikes <= 0 {
		numStrikes = DefaultNumStrikes
	}
	if strikeInterval <= 0 {
		strikeInterval = DefaultStrikeInterval
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	// Style and kind are set per quote; validate the rest with placeholders.
	check := base
	check.Kind = models.Call
	check.Style = models.European
	if err := check.Validate(); err != nil {
		return nil, err
	}
	return &TheoEngine{
		Base:           base,
		NumStrikes:     numStrikes,
		StrikeInterval: strikeInterval,
		Concurrency:    concurrency,
	}, nil
}

// BuildStrikes returns NumStrikes strikes spaced StrikeInterval apart, centered on
// the spot rounded to the interval. Non-positive strikes are dropped.
func (t *TheoEngine) BuildStrikes() []float64 {
	midStrike := utils.RoundToNearest(t.Base.Spot, t.StrikeInterval)
	minStrike := midStrike - (t.StrikeInterval * math.Floor(float64(t.NumStrikes)/2))
	maxStrike := minStrike + t.StrikeInterval*float64(t.NumStrikes-1)
	var strikes []float64
	for _, strike := range utils.Arange(minStrike, maxStrike, t.StrikeInterval) {
		strike = utils.ToFixed(strike, 8)
		if strike > 0 {
			strikes = append(strikes, strike)
		}
	}
	return strikes
}

// Value prices every strike as a call and a put. Contracts are independent and
// are evaluated concurrently, at most Concurrency at a time.
func (t *TheoEngine) Value(ctx context.Context) ([]Quote, error) {
	log := logger.With("run", uuid.New().String())
	log.Infow("Valuing option chain", "params", structs.Map(t.Base), "strikes", t.NumStrikes, "interval", t.StrikeInterval)

	strikes := t.BuildStrikes()
	kinds := []models.OptionKind{models.Call, models.Put}
	quotes := make([]Quote, len(strikes)*len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.Concurrency)
	for i, strike := range strikes {
		for j, kind := range kinds {
			strike, kind := strike, kind
			idx := i*len(kinds) + j
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				quote, err := t.quote(strike, kind)
				if err != nil {
					return fmt.Errorf("strike %v %v: %w", strike, kind, err)
				}
				quotes[idx] = quote
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		log.Errorw("Chain valuation failed", "error", err)
		return nil, err
	}
	log.Infow("Valued option chain", "quotes", len(quotes))
	return quotes, nil
}

func (t *TheoEngine) quote(strike float64, kind models.OptionKind) (Quote, error) {
	var p models.Params
	if err := copier.Copy(&p, &t.Base); err != nil {
		return Quote{}, err
	}
	p.Strike = strike
	p.Kind = kind
	p.ComputeDelta = true

	p.Style = models.European
	european, err := runTree(p)
	if err != nil {
		return Quote{}, err
	}
	p.Style = models.American
	american, err := runTree(p)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Strike:               strike,
		Kind:                 kind,
		European:             european.Value,
		American:             american.Value,
		EarlyExercisePremium: american.Value - european.Value,
		Oracle:               BlackScholes(kind, p.Spot, strike, p.Rate, p.Volatility, p.Maturity),
		Delta:                european.Delta,
	}, nil
}

func runTree(p models.Params) (models.Node, error) {
	tree, err := NewTree(p)
	if err != nil {
		return models.Node{}, err
	}
	return tree.Run()
}

// GetOptionValue values a single contract with the named method. The closed form
// only covers European exercise.
func GetOptionValue(p models.Params, method Method) (float64, error) {
	switch method {
	case BinomialTreeMethod:
		root, err := runTree(p)
		if err != nil {
			return 0, err
		}
		return root.Value, nil
	case BlackScholesMethod:
		if err := p.Validate(); err != nil {
			return 0, err
		}
		if p.Style != models.European {
			return 0, fmt.Errorf("%w: %v cannot price %v exercise", models.ErrInvalidParameter, method, p.Style)
		}
		if p.Volatility == 0 {
			return 0, fmt.Errorf("%w: zero volatility", models.ErrDegenerateModel)
		}
		return BlackScholes(p.Kind, p.Spot, p.Strike, p.Rate, p.Volatility, p.Maturity), nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", models.ErrInvalidParameter, method)
	}
}
