package polarity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		dist Distribution
		want float64
	}{
		{
			name: "canonical order",
			dist: Distribution{Labels: []string{"negative", "neutral", "positive"}, Probs: []float64{0.2, 0.3, 0.5}},
			want: 0.3,
		},
		{
			name: "model order",
			dist: Distribution{Labels: []string{"positive", "negative", "neutral"}, Probs: []float64{0.5, 0.2, 0.3}},
			want: 0.3,
		},
		{
			name: "all negative",
			dist: Distribution{Labels: []string{"negative", "neutral", "positive"}, Probs: []float64{1, 0, 0}},
			want: -1,
		},
		{
			name: "all neutral",
			dist: Distribution{Labels: []string{"negative", "neutral", "positive"}, Probs: []float64{0, 1, 0}},
			want: 0,
		},
		{
			name: "extra labels are ignored",
			dist: Distribution{Labels: []string{"negative", "neutral", "positive", "mixed"}, Probs: []float64{0.1, 0.1, 0.4, 0.4}},
			want: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.dist)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNormalizeMissingLabels(t *testing.T) {
	tests := []struct {
		name    string
		dist    Distribution
		missing []string
	}{
		{
			name:    "no neutral",
			dist:    Distribution{Labels: []string{"negative", "positive"}, Probs: []float64{0.4, 0.6}},
			missing: []string{"neutral"},
		},
		{
			name:    "case sensitive",
			dist:    Distribution{Labels: []string{"Negative", "Neutral", "Positive"}, Probs: []float64{0.2, 0.3, 0.5}},
			missing: []string{"negative", "neutral", "positive"},
		},
		{
			name:    "empty",
			dist:    Distribution{},
			missing: []string{"negative", "neutral", "positive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.dist)
			var contractErr *ContractError
			require.True(t, errors.As(err, &contractErr), "got %v", err)
			assert.Equal(t, tt.missing, contractErr.Missing)
			assert.Equal(t, tt.dist.Labels, contractErr.Labels)
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	labels := []string{"negative", "neutral", "positive"}
	scores, err := NormalizeAll([]Distribution{
		{Labels: labels, Probs: []float64{0.2, 0.3, 0.5}},
		{Labels: labels, Probs: []float64{0.7, 0.2, 0.1}},
	})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.InDelta(t, 0.3, scores[0], 1e-9)
	assert.InDelta(t, -0.6, scores[1], 1e-9)

	scores, err = NormalizeAll(nil)
	require.NoError(t, err)
	assert.Empty(t, scores)

	_, err = NormalizeAll([]Distribution{
		{Labels: labels, Probs: []float64{0.2, 0.3, 0.5}},
		{Labels: []string{"negative", "positive"}, Probs: []float64{0.5, 0.5}},
	})
	var contractErr *ContractError
	assert.True(t, errors.As(err, &contractErr))
}

func TestSoftmax(t *testing.T) {
	logits := newLogits([][]float64{{0, 0, 0}, {1000, 0, -1000}})
	dists := softmax(logits, []string{"a", "b", "c"})
	require.Len(t, dists, 2)

	for _, p := range dists[0].Probs {
		assert.InDelta(t, 1.0/3, p, 1e-9)
	}
	// Large logits must not overflow.
	assert.InDelta(t, 1.0, dists[1].Probs[0], 1e-9)
	assert.InDelta(t, 0.0, dists[1].Probs[2], 1e-9)

	p, ok := dists[0].Prob("b")
	assert.True(t, ok)
	assert.InDelta(t, 1.0/3, p, 1e-9)
	_, ok = dists[0].Prob("z")
	assert.False(t, ok)
}
