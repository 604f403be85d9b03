package forest

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Node is one decision node. Interior nodes route on Feature/Threshold;
// leaves carry the mean label of their training partition.
type Node struct {
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      *Node   `json:"left,omitempty"`
	Right     *Node   `json:"right,omitempty"`
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty"`
}

// Params controls forest construction.
type Params struct {
	Trees         int     `json:"trees"`
	MaxDepth      int     `json:"max_depth"`
	MinSamples    int     `json:"min_samples"`    // partitions at or below this size become leaves
	FeatureSample float64 `json:"feature_sample"` // fraction of features considered per split
	Seed          int64   `json:"seed"`
}

// DefaultParams mirror the production training configuration: 200 trees,
// depth 12, every feature considered at each split.
func DefaultParams(seed int64) Params {
	return Params{
		Trees:         200,
		MaxDepth:      12,
		MinSamples:    2,
		FeatureSample: 1.0,
		Seed:          seed,
	}
}

// Forest is a bootstrap-aggregated regression tree ensemble scoped to a
// single fuel type. The flat exported structure serializes to JSON and back
// without loss (float64 survives the round trip), so a reloaded forest
// predicts identically to the freshly fitted one.
type Forest struct {
	FuelType string   `json:"fuel_type"`
	Features []string `json:"features"`
	Params   Params   `json:"params"`
	Trees    []*Node  `json:"trees"`
}

// New creates an unfitted forest for one fuel type.
func New(fuelType string, features []string, params Params) *Forest {
	return &Forest{
		FuelType: fuelType,
		Features: features,
		Params:   params,
	}
}

// Fit grows the ensemble. Each tree bootstraps its own sample of the rows
// and draws from its own seeded random stream, so fitting is reproducible
// for a given Params.Seed no matter how the trees are scheduled across
// cores.
func (f *Forest) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return fmt.Errorf("cannot fit forest on empty dataset")
	}
	if len(X) != len(y) {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ in length", len(X), len(y))
	}
	if len(f.Features) > 0 && len(f.Features) != len(X[0]) {
		return fmt.Errorf("expected %d features per row, got %d", len(f.Features), len(X[0]))
	}

	nFeatures := len(X[0])
	mtry := int(math.Max(1, math.Round(float64(nFeatures)*f.Params.FeatureSample)))

	trees := make([]*Node, f.Params.Trees)
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for t := 0; t < f.Params.Trees; t++ {
		t := t
		g.Go(func() error {
			rng := rand.New(rand.NewSource(f.Params.Seed + int64(t)))
			n := len(y)
			bx := make([][]float64, n)
			by := make([]float64, n)
			for i := 0; i < n; i++ {
				idx := rng.Intn(n)
				bx[i] = X[idx]
				by[i] = y[idx]
			}
			trees[t] = buildTree(bx, by, 0, f.Params.MaxDepth, f.Params.MinSamples, mtry, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	f.Trees = trees
	return nil
}

// Predict returns the ensemble mean for one feature vector.
func (f *Forest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range f.Trees {
		sum += predictTree(t, x)
	}
	return sum / float64(len(f.Trees))
}

// PredictBatch predicts every row of X.
func (f *Forest) PredictBatch(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = f.Predict(X[i])
	}
	return out
}

func buildTree(X [][]float64, y []float64, depth, maxDepth, minSamples, mtry int, rng *rand.Rand) *Node {
	if depth >= maxDepth || len(y) <= minSamples {
		return &Node{Leaf: true, Value: stat.Mean(y, nil)}
	}

	nSamples := len(y)
	nFeatures := len(X[0])
	featIdx := rng.Perm(nFeatures)[:mtry]

	bestFeat := -1
	bestThresh := 0.0
	bestScore := math.Inf(1)
	var bestLX, bestRX [][]float64
	var bestLY, bestRY []float64

	for _, feat := range featIdx {
		vals := make([]float64, nSamples)
		for i := range X {
			vals[i] = X[i][feat]
		}
		sort.Float64s(vals)

		// Quartile candidates keep split search cheap while staying close
		// to the variance-optimal threshold on smooth targets.
		for _, thresh := range []float64{vals[nSamples/4], vals[nSamples/2], vals[3*nSamples/4]} {
			var lx, rx [][]float64
			var ly, ry []float64
			for i := range X {
				if X[i][feat] <= thresh {
					lx = append(lx, X[i])
					ly = append(ly, y[i])
				} else {
					rx = append(rx, X[i])
					ry = append(ry, y[i])
				}
			}
			if len(lx) == 0 || len(rx) == 0 {
				continue
			}
			score := variance(ly)*float64(len(ly)) + variance(ry)*float64(len(ry))
			if score < bestScore {
				bestScore = score
				bestFeat = feat
				bestThresh = thresh
				bestLX, bestRX = lx, rx
				bestLY, bestRY = ly, ry
			}
		}
	}

	if bestFeat == -1 {
		return &Node{Leaf: true, Value: stat.Mean(y, nil)}
	}
	return &Node{
		Feature:   bestFeat,
		Threshold: bestThresh,
		Left:      buildTree(bestLX, bestLY, depth+1, maxDepth, minSamples, mtry, rng),
		Right:     buildTree(bestRX, bestRY, depth+1, maxDepth, minSamples, mtry, rng),
	}
}

func predictTree(n *Node, x []float64) float64 {
	if n.Leaf {
		return n.Value
	}
	if x[n.Feature] <= n.Threshold {
		return predictTree(n.Left, x)
	}
	return predictTree(n.Right, x)
}

func variance(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	m := stat.Mean(y, nil)
	v := 0.0
	for _, t := range y {
		d := t - m
		v += d * d
	}
	return v / float64(len(y))
}
