package polarity

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// softmax turns each row of logits into a Distribution over labels.
func softmax(logits *mat.Dense, labels []string) []Distribution {
	rows, cols := logits.Dims()
	out := make([]Distribution, rows)
	for i := range rows {
		row := mat.Row(nil, i, logits)
		lse := floats.LogSumExp(row)
		probs := make([]float64, cols)
		for j, x := range row {
			probs[j] = math.Exp(x - lse)
		}
		out[i] = Distribution{Labels: labels, Probs: probs}
	}
	return out
}
