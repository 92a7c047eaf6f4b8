package models

// Node is one state of the lattice. Price is recomputable from the layer size
// and index; it is kept alongside the value so a layer can be read on its own.
type Node struct {
	Price    float64 // Underlying price at this node
	Value    float64 // Option value (payoff at maturity, discounted expectation before)
	Delta    float64 // Hedge ratio from the two children, interior nodes only
	HasDelta bool
}

// Layer is one time slice of the lattice, ordered from the highest price
// (all up moves) to the lowest.
type Layer []Node

// Values returns the option values of the layer in order.
func (l Layer) Values() []float64 {
	v := make([]float64, len(l))
	for i := range l {
		v[i] = l[i].Value
	}
	return v
}
