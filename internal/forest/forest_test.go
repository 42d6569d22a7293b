package forest

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoClusterData builds a separable two-class set: class 0 around
// (0, 0), class 1 around (10, 10).
func twoClusterData(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		center := 0.0
		y[i] = 0
		if i%2 == 1 {
			center = 10.0
			y[i] = 1
		}
		x[i] = []float64{center + rng.NormFloat64(), center + rng.NormFloat64()}
	}
	return x, y
}

func smallConfig() Config {
	return Config{
		Trees:           15,
		MaxDepth:        5,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Seed:            42,
	}
}

func TestFitSeparatesClusters(t *testing.T) {
	x, y := twoClusterData(200, 7)
	f, err := Fit(x, y, 2, smallConfig())
	require.NoError(t, err)

	assert.Greater(t, f.Accuracy(x, y), 0.95)
	assert.Equal(t, 0, f.Predict([]float64{-0.5, 0.5}))
	assert.Equal(t, 1, f.Predict([]float64{9.5, 10.5}))
}

func TestPredictProbaSumsToOne(t *testing.T) {
	x, y := twoClusterData(100, 3)
	f, err := Fit(x, y, 2, smallConfig())
	require.NoError(t, err)

	for _, row := range x {
		proba := f.PredictProba(row)
		require.Len(t, proba, 2)
		assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-9)
		assert.GreaterOrEqual(t, proba[0], 0.0)
		assert.GreaterOrEqual(t, proba[1], 0.0)
	}
}

func TestFitIsDeterministicForSeed(t *testing.T) {
	x, y := twoClusterData(150, 11)

	f1, err := Fit(x, y, 2, smallConfig())
	require.NoError(t, err)
	f2, err := Fit(x, y, 2, smallConfig())
	require.NoError(t, err)

	probe := []float64{5, 5}
	assert.Equal(t, f1.PredictProba(probe), f2.PredictProba(probe))

	for _, row := range x[:20] {
		assert.Equal(t, f1.PredictProba(row), f2.PredictProba(row))
	}
}

func TestPredictProbaIsStableAcrossCalls(t *testing.T) {
	x, y := twoClusterData(100, 5)
	f, err := Fit(x, y, 2, smallConfig())
	require.NoError(t, err)

	probe := []float64{2.5, 7.5}
	first := f.PredictProba(probe)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, f.PredictProba(probe))
	}
}

func TestFitRejectsBadInput(t *testing.T) {
	_, err := Fit(nil, nil, 2, smallConfig())
	assert.Error(t, err)

	_, err = Fit([][]float64{{1, 2}}, []int{5}, 2, smallConfig())
	assert.Error(t, err)

	_, err = Fit([][]float64{{1, 2}, {3, 4}}, []int{0}, 2, smallConfig())
	assert.Error(t, err)
}

func TestGini(t *testing.T) {
	assert.Equal(t, 0.0, gini([]int{10, 0}, 10))
	assert.InDelta(t, 0.5, gini([]int{5, 5}, 10), 1e-9)
	assert.Equal(t, 0.0, gini(nil, 0))
}

func TestLeafProbaReflectsClassCounts(t *testing.T) {
	b := &treeBuilder{classes: 2}
	leaf := b.leaf([]int{3, 1}, 4)
	require.NotNil(t, leaf.Proba)
	assert.InDelta(t, 0.75, leaf.Proba[0], 1e-9)
	assert.InDelta(t, 0.25, leaf.Proba[1], 1e-9)
}

func TestAccuracyEmptySet(t *testing.T) {
	x, y := twoClusterData(50, 1)
	f, err := Fit(x, y, 2, smallConfig())
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.Accuracy(nil, nil))
	assert.False(t, math.IsNaN(f.Accuracy(nil, nil)))
}
