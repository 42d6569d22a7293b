// Package forest implements a random-forest classifier: bagged CART
// trees with per-node feature subsampling, scored by averaging each
// tree's leaf class distribution.
package forest

import (
	"errors"
	"math"
	"math/rand"
)

// Config controls forest fitting.
type Config struct {
	Trees           int   `json:"trees"`
	MaxDepth        int   `json:"max_depth"`
	MinSamplesSplit int   `json:"min_samples_split"`
	MinSamplesLeaf  int   `json:"min_samples_leaf"`
	Seed            int64 `json:"seed"`
}

// DefaultConfig mirrors the hyperparameters the model was originally
// tuned with.
func DefaultConfig() Config {
	return Config{
		Trees:           100,
		MaxDepth:        10,
		MinSamplesSplit: 5,
		MinSamplesLeaf:  2,
		Seed:            42,
	}
}

// Forest is a trained ensemble. It is immutable after Fit and safe for
// concurrent PredictProba calls.
type Forest struct {
	Trees   []*Tree `json:"trees"`
	Classes int     `json:"classes"`
	Config  Config  `json:"config"`
}

// Fit trains a forest on feature rows x with class labels y. Labels
// must be in [0, classes). Fitting is deterministic for a given seed.
func Fit(x [][]float64, y []int, classes int, cfg Config) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, errors.New("forest: training set is empty or misaligned")
	}
	for _, label := range y {
		if label < 0 || label >= classes {
			return nil, errors.New("forest: label out of range")
		}
	}

	nFeatures := len(x[0])
	maxFeatures := int(math.Sqrt(float64(nFeatures)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	trees := make([]*Tree, cfg.Trees)
	for t := 0; t < cfg.Trees; t++ {
		builder := &treeBuilder{
			x:           x,
			y:           y,
			classes:     classes,
			maxDepth:    cfg.MaxDepth,
			minSplit:    cfg.MinSamplesSplit,
			minLeaf:     cfg.MinSamplesLeaf,
			maxFeatures: maxFeatures,
			rng:         rand.New(rand.NewSource(rng.Int63())),
		}
		indices := bootstrap(len(x), builder.rng)
		trees[t] = &Tree{Root: builder.build(indices, 0)}
	}

	return &Forest{Trees: trees, Classes: classes, Config: cfg}, nil
}

// bootstrap samples n indices with replacement.
func bootstrap(n int, rng *rand.Rand) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = rng.Intn(n)
	}
	return indices
}

// PredictProba returns the class probability distribution for one
// feature row, averaged over all trees.
func (f *Forest) PredictProba(x []float64) []float64 {
	proba := make([]float64, f.Classes)
	for _, t := range f.Trees {
		for c, p := range t.PredictProba(x) {
			proba[c] += p
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.Trees))
	}
	return proba
}

// Predict returns the most probable class. Ties break toward the lower
// class index.
func (f *Forest) Predict(x []float64) int {
	proba := f.PredictProba(x)
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return best
}

// Accuracy scores the forest against a labeled set.
func (f *Forest) Accuracy(x [][]float64, y []int) float64 {
	if len(x) == 0 {
		return 0
	}
	correct := 0
	for i, row := range x {
		if f.Predict(row) == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x))
}
