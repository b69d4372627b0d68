package forecast

import (
	"errors"
	"math/rand/v2"
	"sort"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
)

var ErrNoTrainingData = errors.New("no training rows")

// Regressor is a model fitted on feature rows that predicts sales from a feature vector.
type Regressor interface {
	Fit(rows []domain.FeatureRow) error
	Predict(features []float64) float64
}

const (
	DefaultTrees = 100
	DefaultSeed  = 42
)

// ForestConfig controls the random forest.
type ForestConfig struct {
	Trees int
	Seed  uint64
	// MinSamplesSplit is the smallest node that may still be split.
	MinSamplesSplit int
}

func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: DefaultTrees, Seed: DefaultSeed, MinSamplesSplit: 2}
}

// RandomForest is a bagged ensemble of regression trees. Each tree is grown to
// full depth on a bootstrap sample using variance-reduction splits over all features;
// the prediction is the mean of the trees' leaf values. A fixed seed makes
// repeated fits on identical rows produce identical models.
type RandomForest struct {
	cfg   ForestConfig
	trees []*treeNode
}

func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.Trees <= 0 {
		cfg.Trees = DefaultTrees
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	return &RandomForest{cfg: cfg}
}

func (f *RandomForest) Fit(rows []domain.FeatureRow) error {
	if len(rows) == 0 {
		return ErrNoTrainingData
	}

	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = r.Features()
		y[i] = r.Sales
	}

	rng := rand.New(rand.NewPCG(f.cfg.Seed, f.cfg.Seed^0x9e3779b97f4a7c15))
	f.trees = make([]*treeNode, f.cfg.Trees)
	for t := range f.trees {
		sample := make([]int, len(rows))
		for i := range sample {
			sample[i] = rng.IntN(len(rows))
		}
		f.trees[t] = growTree(x, y, sample, f.cfg.MinSamplesSplit)
	}

	return nil
}

// Predict returns 0 for an unfitted forest.
func (f *RandomForest) Predict(features []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(features)
	}
	return sum / float64(len(f.trees))
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func growTree(x [][]float64, y []float64, idx []int, minSplit int) *treeNode {
	mean := meanOf(y, idx)
	if len(idx) < minSplit || constantTargets(y, idx) {
		return &treeNode{leaf: true, value: mean}
	}

	feature, threshold, ok := bestSplit(x, y, idx)
	if !ok {
		return &treeNode{leaf: true, value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growTree(x, y, left, minSplit),
		right:     growTree(x, y, right, minSplit),
	}
}

// bestSplit scans every feature for the threshold with the lowest summed squared
// error of the two children. Thresholds sit midway between distinct values.
func bestSplit(x [][]float64, y []float64, idx []int) (int, float64, bool) {
	n := float64(len(idx))
	var total, totalSq float64
	for _, i := range idx {
		total += y[i]
		totalSq += y[i] * y[i]
	}
	bestScore := totalSq - total*total/n
	bestFeature, bestThreshold, found := -1, 0.0, false

	sorted := make([]int, len(idx))
	for feature := range x[idx[0]] {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool { return x[sorted[a]][feature] < x[sorted[b]][feature] })

		var leftSum, leftSq float64
		for k := 0; k < len(sorted)-1; k++ {
			v := y[sorted[k]]
			leftSum += v
			leftSq += v * v

			cur, next := x[sorted[k]][feature], x[sorted[k+1]][feature]
			if cur == next {
				continue
			}

			nl := float64(k + 1)
			nr := n - nl
			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			score := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if score < bestScore-1e-12 {
				bestScore = score
				bestFeature = feature
				bestThreshold = (cur + next) / 2
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func meanOf(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func constantTargets(y []float64, idx []int) bool {
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			return false
		}
	}
	return true
}
