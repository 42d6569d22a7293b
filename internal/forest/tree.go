package forest

import (
	"math/rand"
	"sort"
)

// Node is a single decision node. Leaves carry the class distribution of
// the training samples that reached them; internal nodes split on
// feature <= threshold.
type Node struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *Node     `json:"left,omitempty"`
	Right     *Node     `json:"right,omitempty"`
	Proba     []float64 `json:"proba,omitempty"`
}

// Tree is a single CART classification tree.
type Tree struct {
	Root *Node `json:"root"`
}

// PredictProba walks the tree and returns the leaf class distribution.
func (t *Tree) PredictProba(x []float64) []float64 {
	n := t.Root
	for n.Proba == nil {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Proba
}

type treeBuilder struct {
	x           [][]float64
	y           []int
	classes     int
	maxDepth    int
	minSplit    int
	minLeaf     int
	maxFeatures int
	rng         *rand.Rand
}

func (b *treeBuilder) build(indices []int, depth int) *Node {
	counts := b.classCounts(indices)
	if depth >= b.maxDepth || len(indices) < b.minSplit || pure(counts) {
		return b.leaf(counts, len(indices))
	}

	feature, threshold, ok := b.bestSplit(indices, counts)
	if !ok {
		return b.leaf(counts, len(indices))
	}

	var left, right []int
	for _, i := range indices {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.minLeaf || len(right) < b.minLeaf {
		return b.leaf(counts, len(indices))
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

func (b *treeBuilder) leaf(counts []int, total int) *Node {
	proba := make([]float64, b.classes)
	for c, n := range counts {
		proba[c] = float64(n) / float64(total)
	}
	return &Node{Proba: proba}
}

func (b *treeBuilder) classCounts(indices []int) []int {
	counts := make([]int, b.classes)
	for _, i := range indices {
		counts[b.y[i]]++
	}
	return counts
}

func pure(counts []int) bool {
	nonzero := 0
	for _, c := range counts {
		if c > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

// bestSplit searches a random feature subset for the threshold with the
// lowest weighted gini impurity. Candidate thresholds are midpoints
// between consecutive distinct feature values.
func (b *treeBuilder) bestSplit(indices []int, counts []int) (feature int, threshold float64, ok bool) {
	total := len(indices)
	parentGini := gini(counts, total)
	best := parentGini
	sorted := make([]int, total)

	for _, f := range b.sampleFeatures() {
		copy(sorted, indices)
		sort.Slice(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})

		leftCounts := make([]int, b.classes)
		rightCounts := make([]int, b.classes)
		copy(rightCounts, counts)

		for pos := 0; pos < total-1; pos++ {
			c := b.y[sorted[pos]]
			leftCounts[c]++
			rightCounts[c]--

			v, next := b.x[sorted[pos]][f], b.x[sorted[pos+1]][f]
			if v == next {
				continue
			}
			nLeft := pos + 1
			nRight := total - nLeft
			if nLeft < b.minLeaf || nRight < b.minLeaf {
				continue
			}

			g := (float64(nLeft)*gini(leftCounts, nLeft) +
				float64(nRight)*gini(rightCounts, nRight)) / float64(total)
			if g < best {
				best = g
				feature = f
				threshold = (v + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// sampleFeatures picks maxFeatures distinct feature indices without
// replacement.
func (b *treeBuilder) sampleFeatures() []int {
	n := len(b.x[0])
	perm := b.rng.Perm(n)
	return perm[:b.maxFeatures]
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}
