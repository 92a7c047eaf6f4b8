package options

import (
	"fmt"
	"math"

	"github.com/tantralabs/theo/logger"
	"github.com/tantralabs/theo/models"
)

// Tree is a recombining binomial lattice. Every derived constant is fixed at
// construction, so a Tree may be run from several goroutines at once.
//
// Layer indexing: a layer of n nodes holds prices spot*u^(n-1-i)*d^i, so index 0
// is the all-up node and up then down lands on the same node as down then up.
//
//	        0
//	    0
//	0       1
//	    1
//	        2
//
// Very large depth combined with very large volatility can push u^k past the
// float64 range. Those prices overflow to +Inf and are not guarded against.
type Tree struct {
	params models.Params
	dt     float64 // Length of one time step (years)
	u      float64 // Up factor
	d      float64 // Down factor
	p      float64 // Risk-neutral probability of an up move
	disc   float64 // One-step discount factor
}

func NewTree(params models.Params) (*Tree, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Convention == "" {
		params.Convention = models.CRR
	}
	t := &Tree{
		params: params,
		dt:     params.Maturity / float64(params.Depth),
	}
	if params.Convention == models.Additive {
		t.u = 1 + params.Volatility
		t.d = 1 - params.Volatility
	} else {
		t.u = math.Exp(params.Volatility * math.Sqrt(t.dt))
		t.d = 1 / t.u
	}
	if t.u == t.d {
		return nil, fmt.Errorf("%w: up and down factors coincide (u=d=%v, volatility %v)", models.ErrDegenerateModel, t.u, params.Volatility)
	}
	t.p = (math.Exp(params.Rate*t.dt) - t.d) / (t.u - t.d)
	t.disc = math.Exp(-params.Rate * t.dt)
	if t.p < 0 || t.p > 1 {
		logger.Warnf("Risk-neutral probability %v outside [0, 1] (u=%v, d=%v, dt=%v)", t.p, t.u, t.d, t.dt)
	}
	logger.Debugf("Built %v %v tree with depth %v: u=%v d=%v p=%v dt=%v", params.Style, params.Kind, params.Depth, t.u, t.d, t.p, t.dt)
	return t, nil
}

func (t *Tree) Params() models.Params { return t.params }
func (t *Tree) Up() float64           { return t.u }
func (t *Tree) Down() float64         { return t.d }
func (t *Tree) Probability() float64  { return t.p }
func (t *Tree) Dt() float64           { return t.dt }

// PriceAt returns the underlying price of node index in a layer of layerSize nodes.
func (t *Tree) PriceAt(layerSize int, index int) float64 {
	return t.params.Spot * math.Pow(t.u, float64(layerSize-1-index)) * math.Pow(t.d, float64(index))
}

func (t *Tree) TerminalPayoff(price float64) float64 {
	return models.ExpiryValue(t.params.Kind, t.params.Strike, price)
}

// TerminalLayer holds the depth+1 maturity nodes valued at their payoff.
func (t *Tree) TerminalLayer() models.Layer {
	n := t.params.Depth + 1
	layer := make(models.Layer, n)
	for i := range layer {
		price := t.PriceAt(n, i)
		layer[i] = models.Node{Price: price, Value: t.TerminalPayoff(price)}
	}
	return layer
}

// Step collapses a layer of n nodes into the n-1 nodes one time step earlier.
func (t *Tree) Step(layer models.Layer) (models.Layer, error) {
	n := len(layer)
	if n < 2 {
		return nil, fmt.Errorf("%w: cannot step a layer of %d nodes", models.ErrInvalidParameter, n)
	}
	next := make(models.Layer, n-1)
	t.step(layer, next)
	return next, nil
}

// step writes the collapse of layer into next, which must hold len(layer)-1 nodes.
func (t *Tree) step(layer, next models.Layer) {
	n := len(layer)
	american := t.params.Style == models.American
	for i := 0; i < n-1; i++ {
		upstate := layer[i]
		downstate := layer[i+1]
		price := t.PriceAt(n-1, i)
		f := (t.p*upstate.Value + (1-t.p)*downstate.Value) * t.disc
		if american {
			f = math.Max(f, t.TerminalPayoff(price))
		}
		node := models.Node{Price: price, Value: f}
		if t.params.ComputeDelta {
			node.Delta = (upstate.Value - downstate.Value) / (upstate.Price - downstate.Price)
			node.HasDelta = true
		}
		next[i] = node
	}
}

// Run performs backward induction from maturity to the root and returns the
// root node. Only two layers are live at any time.
func (t *Tree) Run() (models.Node, error) {
	layer := t.TerminalLayer()
	scratch := make(models.Layer, len(layer)-1)
	for len(layer) > 1 {
		next := scratch[:len(layer)-1]
		t.step(layer, next)
		layer, scratch = next, layer
	}
	return layer[0], nil
}

// Trace runs the same recurrence as Run but keeps every layer, ordered from
// maturity to the root.
func (t *Tree) Trace() ([]models.Layer, error) {
	layers := make([]models.Layer, 0, t.params.Depth+1)
	layer := t.TerminalLayer()
	layers = append(layers, layer)
	for len(layer) > 1 {
		next, err := t.Step(layer)
		if err != nil {
			return nil, err
		}
		layers = append(layers, next)
		layer = next
	}
	return layers, nil
}
