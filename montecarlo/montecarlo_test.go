package montecarlo

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tantralabs/theo/models"
	"github.com/tantralabs/theo/options"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func europeanParams(kind models.OptionKind) EuropeanParams {
	return EuropeanParams{
		Spot:       100,
		Strike:     99,
		Rate:       0.06,
		Volatility: 0.2,
		Maturity:   1,
		Kind:       kind,
		Steps:      50,
		Paths:      20000,
		Seed:       42,
	}
}

func TestEuropeanAgainstBlackScholes(t *testing.T) {
	for _, kind := range []models.OptionKind{models.Call, models.Put} {
		p := europeanParams(kind)
		est, err := European(p)
		if err != nil {
			t.Fatal(err)
		}
		want := options.BlackScholes(kind, p.Spot, p.Strike, p.Rate, p.Volatility, p.Maturity)
		fmt.Printf("European %v MC: %v +/- %v (Black-Scholes %v)\n", kind, est.Mean, est.StdErr, want)
		if !approxEqual(est.Mean, want, 4*est.StdErr+0.05) {
			t.Errorf("Bad %v estimate: %v, expected %v within %v\n", kind, est.Mean, want, 4*est.StdErr+0.05)
		}
		if est.Paths != p.Paths {
			t.Errorf("Bad path count: %v, expected %v\n", est.Paths, p.Paths)
		}
		checkInterval(t, est)
	}
}

func checkInterval(t *testing.T, est Estimate) {
	t.Helper()
	if !(est.Lower < est.Mean && est.Mean < est.Upper) {
		t.Errorf("Mean %v outside [%v, %v]\n", est.Mean, est.Lower, est.Upper)
	}
	if !approxEqual(est.Upper-est.Lower, 2*1.96*est.StdErr, 1e-12) {
		t.Errorf("Bad interval width: %v, expected %v\n", est.Upper-est.Lower, 2*1.96*est.StdErr)
	}
	if !approxEqual(est.StdErr, est.StdDev/math.Sqrt(float64(est.Paths)), 1e-12) {
		t.Errorf("Bad standard error: %v\n", est.StdErr)
	}
}

func TestEuropeanDeterministic(t *testing.T) {
	p := europeanParams(models.Put)
	p.Paths = 500
	a, _ := European(p)
	b, _ := European(p)
	if a != b {
		t.Errorf("Same seed gave %+v and %+v", a, b)
	}
	p.Seed++
	c, _ := European(p)
	if a.Mean == c.Mean {
		t.Errorf("Different seeds gave the same mean %v", a.Mean)
	}
}

func TestEuropeanSinglePath(t *testing.T) {
	p := europeanParams(models.Call)
	p.Paths = 1
	est, err := European(p)
	if err != nil {
		t.Fatal(err)
	}
	if est.StdDev != 0 || est.StdErr != 0 || est.Lower != est.Mean || est.Upper != est.Mean {
		t.Errorf("Bad single path estimate: %+v", est)
	}
}

func hedgeParams(payoff Payoff, common bool) HedgeParams {
	return HedgeParams{
		Spot:        100,
		Strike:      99,
		Rate:        0.06,
		Volatility:  0.2,
		Maturity:    1,
		Payoff:      payoff,
		Epsilon:     0.5,
		Paths:       20000,
		Repetitions: 8,
		CommonSeed:  common,
		Seed:        7,
	}
}

func TestHedgeCommonSeed(t *testing.T) {
	p := hedgeParams(PutPayoff, true)
	common, err := Hedge(p)
	if err != nil {
		t.Fatal(err)
	}
	want := options.BlackScholesDelta(models.Put, p.Spot, p.Strike, p.Rate, p.Volatility, p.Maturity)
	fmt.Printf("Put delta with common seed: %v +/- %v (Black-Scholes %v)\n", common.Delta, common.StdDev, want)
	if !approxEqual(common.Delta, want, 0.02) {
		t.Errorf("Bad Delta: %v, expected %v\n", common.Delta, want)
	}
	if len(common.Samples) != p.Repetitions {
		t.Errorf("Bad sample count: %v, expected %v\n", len(common.Samples), p.Repetitions)
	}

	p.CommonSeed = false
	independent, err := Hedge(p)
	if err != nil {
		t.Fatal(err)
	}
	fmt.Printf("Put delta with independent seeds: %v +/- %v\n", independent.Delta, independent.StdDev)
	if common.StdDev >= independent.StdDev {
		t.Errorf("Common seed dispersion %v not below independent dispersion %v\n", common.StdDev, independent.StdDev)
	}
}

func TestHedgeDigital(t *testing.T) {
	p := hedgeParams(DigitalPayoff, true)
	p.Paths = 50000
	est, err := Hedge(p)
	if err != nil {
		t.Fatal(err)
	}
	want := options.DigitalDelta(p.Spot, p.Strike, p.Rate, p.Volatility, p.Maturity)
	fmt.Printf("Digital delta with common seed: %v (Black-Scholes %v)\n", est.Delta, want)
	if !approxEqual(est.Delta, want, 0.003) {
		t.Errorf("Bad digital Delta: %v, expected %v\n", est.Delta, want)
	}
}

func TestHedgeDeterministic(t *testing.T) {
	p := hedgeParams(PutPayoff, false)
	p.Paths = 200
	a, _ := Hedge(p)
	b, _ := Hedge(p)
	if a.Delta != b.Delta || a.StdDev != b.StdDev {
		t.Errorf("Same seed gave %+v and %+v", a, b)
	}
	p.Repetitions = 1
	single, err := Hedge(p)
	if err != nil {
		t.Fatal(err)
	}
	if single.StdDev != 0 || single.Delta != single.Samples[0] {
		t.Errorf("Bad single repetition estimate: %+v", single)
	}
}

func TestArithmeticAsianCall(t *testing.T) {
	p := AsianParams{
		Spot:       99,
		Strike:     100,
		Rate:       0.06,
		Volatility: 0.2,
		Maturity:   1,
		Steps:      50,
		Paths:      20000,
		Seed:       3,
	}
	est, err := ArithmeticAsianCall(p)
	if err != nil {
		t.Fatal(err)
	}
	fmt.Printf("Arithmetic Asian call: %v in [%v, %v]\n", est.Mean, est.Lower, est.Upper)
	checkInterval(t, est)
	// Reference from an independent 100000 path run.
	if !approxEqual(est.Mean, 5.555, 4*est.StdErr+0.1) {
		t.Errorf("Bad Asian theo: %v, expected about 5.555\n", est.Mean)
	}
	european := options.BlackScholesCall(p.Spot, p.Strike, p.Rate, p.Volatility, p.Maturity)
	if est.Mean <= 0 || est.Mean >= european {
		t.Errorf("Asian call %v not inside (0, %v)\n", est.Mean, european)
	}

	again, _ := ArithmeticAsianCall(p)
	if again != est {
		t.Errorf("Same seed gave %+v and %+v", est, again)
	}
}

func TestInvalidParameters(t *testing.T) {
	eu := europeanParams(models.Call)
	eu.Steps = 0
	hedgeNaN := hedgeParams(PutPayoff, true)
	hedgeNaN.Epsilon = math.NaN()
	hedgeKind := hedgeParams("call", true)
	hedgeReps := hedgeParams(PutPayoff, true)
	hedgeReps.Repetitions = 0
	euKind := europeanParams("binary")
	euVol := europeanParams(models.Put)
	euVol.Volatility = -0.2
	euRate := europeanParams(models.Put)
	euRate.Rate = math.Inf(-1)

	for name, fn := range map[string]func() error{
		"european steps":    func() error { _, err := European(eu); return err },
		"european kind":     func() error { _, err := European(euKind); return err },
		"european vol":      func() error { _, err := European(euVol); return err },
		"european rate":     func() error { _, err := European(euRate); return err },
		"hedge epsilon":     func() error { _, err := Hedge(hedgeNaN); return err },
		"hedge payoff":      func() error { _, err := Hedge(hedgeKind); return err },
		"hedge repetitions": func() error { _, err := Hedge(hedgeReps); return err },
		"asian paths": func() error {
			_, err := ArithmeticAsianCall(AsianParams{Spot: 99, Strike: 100, Maturity: 1, Steps: 50})
			return err
		},
		"asian spot": func() error {
			_, err := ArithmeticAsianCall(AsianParams{Strike: 100, Maturity: 1, Steps: 50, Paths: 10})
			return err
		},
	} {
		if err := fn(); !errors.Is(err, models.ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", name, err)
		}
	}
}
