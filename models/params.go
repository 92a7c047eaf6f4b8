package models

import (
	"fmt"
	"math"
	"strings"
)

type OptionKind string

const (
	Call OptionKind = "call"
	Put  OptionKind = "put"
)

type ExerciseStyle string

const (
	European ExerciseStyle = "european"
	American ExerciseStyle = "american"
)

// FactorConvention selects how the lattice up and down factors are derived
// from volatility. The zero value is CRR.
type FactorConvention string

const (
	CRR      FactorConvention = "crr"      // u = exp(vol*sqrt(dt)), d = 1/u
	Additive FactorConvention = "additive" // u = 1+vol, d = 1-vol
)

// Params describes a single lattice valuation. A Params value is copied into
// the pricer on construction and never mutated afterwards.
type Params struct {
	Depth        int              // Number of time steps
	Strike       float64          // Strike price
	Spot         float64          // Underlying price at the root
	Rate         float64          // Continuously compounded risk free rate
	Volatility   float64          // Annualized volatility
	Maturity     float64          // Time to expiry (years)
	Kind         OptionKind       // "call" or "put"
	Style        ExerciseStyle    // "european" or "american"
	Convention   FactorConvention // "crr" (default) or "additive"
	ComputeDelta bool             // Record a hedge ratio on every interior node
}

func (p Params) Validate() error {
	if p.Depth <= 0 {
		return fmt.Errorf("%w: depth must be positive, got %d", ErrInvalidParameter, p.Depth)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"strike", p.Strike},
		{"spot", p.Spot},
		{"rate", p.Rate},
		{"volatility", p.Volatility},
		{"maturity", p.Maturity},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	if p.Strike <= 0 {
		return fmt.Errorf("%w: strike must be positive, got %v", ErrInvalidParameter, p.Strike)
	}
	if p.Spot <= 0 {
		return fmt.Errorf("%w: spot must be positive, got %v", ErrInvalidParameter, p.Spot)
	}
	if p.Maturity <= 0 {
		return fmt.Errorf("%w: maturity must be positive, got %v", ErrInvalidParameter, p.Maturity)
	}
	if p.Volatility < 0 {
		return fmt.Errorf("%w: volatility must not be negative, got %v", ErrInvalidParameter, p.Volatility)
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: unknown option kind %q", ErrInvalidParameter, p.Kind)
	}
	if !p.Style.Valid() {
		return fmt.Errorf("%w: unknown exercise style %q", ErrInvalidParameter, p.Style)
	}
	switch p.Convention {
	case "", CRR:
	case Additive:
		if p.Volatility >= 1 {
			return fmt.Errorf("%w: additive factors need volatility below 1, got %v", ErrInvalidParameter, p.Volatility)
		}
	default:
		return fmt.Errorf("%w: unknown factor convention %q", ErrInvalidParameter, p.Convention)
	}
	return nil
}

func (k OptionKind) Valid() bool {
	return k == Call || k == Put
}

func (s ExerciseStyle) Valid() bool {
	return s == European || s == American
}

func ParseOptionKind(s string) (OptionKind, error) {
	k := OptionKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown option kind %q", ErrInvalidParameter, s)
	}
	return k, nil
}

func ParseExerciseStyle(s string) (ExerciseStyle, error) {
	e := ExerciseStyle(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: unknown exercise style %q", ErrInvalidParameter, s)
	}
	return e, nil
}

// ParseFactorConvention maps an empty string to CRR.
func ParseFactorConvention(s string) (FactorConvention, error) {
	switch c := FactorConvention(strings.ToLower(strings.TrimSpace(s))); c {
	case "", CRR:
		return CRR, nil
	case Additive:
		return Additive, nil
	default:
		return "", fmt.Errorf("%w: unknown factor convention %q", ErrInvalidParameter, s)
	}
}
