package options

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/tantralabs/theo/models"
)

// TraceRow is one lattice node flattened for CSV output. Layer 0 is maturity.
type TraceRow struct {
	Layer int     `csv:"layer"`
	Index int     `csv:"index"`
	Price float64 `csv:"price"`
	Value float64 `csv:"value"`
	Delta string  `csv:"delta"` // Empty on terminal nodes
}

func TraceRows(layers []models.Layer) []*TraceRow {
	var rows []*TraceRow
	for l, layer := range layers {
		for i, node := range layer {
			row := &TraceRow{Layer: l, Index: i, Price: node.Price, Value: node.Value}
			if node.HasDelta {
				row.Delta = strconv.FormatFloat(node.Delta, 'g', -1, 64)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteTrace writes every node of a Trace as CSV with a header row.
func WriteTrace(w io.Writer, layers []models.Layer) error {
	return gocsv.Marshal(TraceRows(layers), w)
}
