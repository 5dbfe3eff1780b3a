package oracle

import (
	"errors"
	"slices"

	"github.com/jcalabro/lbf"
)

// ErrNoSamples is returned by Fit when there is nothing to train on.
var ErrNoSamples = errors.New("oracle: no training samples")

const (
	defaultMaxDepth = 3
	defaultMinLeaf  = 1
)

// Sample is one labelled training example.
type Sample struct {
	Features lbf.Features
	Member   bool
}

// SamplesFrom labels members as true and nonMembers as false.
func SamplesFrom(members, nonMembers []string) []Sample {
	samples := make([]Sample, 0, len(members)+len(nonMembers))
	for _, m := range members {
		samples = append(samples, Sample{Features: lbf.ExtractFeatures(m), Member: true})
	}
	for _, m := range nonMembers {
		samples = append(samples, Sample{Features: lbf.ExtractFeatures(m), Member: false})
	}
	return samples
}

// FitOptions bounds the size of a trained Tree.
type FitOptions struct {
	// MaxDepth is the maximum number of splits on any path. Default: 3.
	// A depth of 0 is replaced by the default; use a negative depth for a
	// single leaf.
	MaxDepth int

	// MinLeaf is the minimum number of samples on each side of a split.
	// Default: 1.
	MinLeaf int
}

// Tree is a binary decision tree over item features. Internal nodes send
// an item left when its feature value is <= the node's threshold. Trees are
// built by Fit; the zero Tree rejects everything.
type Tree struct {
	root *node
}

type node struct {
	feature   Feature
	threshold int
	left      *node // feature <= threshold
	right     *node
	member    bool // Prediction, for leaves
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

// Classify implements lbf.Classifier.
func (t *Tree) Classify(fv lbf.Features) bool {
	n := t.root
	if n == nil {
		return false
	}
	for !n.isLeaf() {
		if n.feature.Value(fv) <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.member
}

// Depth returns the number of splits on the longest path.
func (t *Tree) Depth() int {
	if t.root == nil {
		return 0
	}
	return depth(t.root)
}

func depth(n *node) int {
	if n.isLeaf() {
		return 0
	}
	return 1 + max(depth(n.left), depth(n.right))
}

// Leaves returns the number of leaves.
func (t *Tree) Leaves() int {
	if t.root == nil {
		return 0
	}
	return leaves(t.root)
}

func leaves(n *node) int {
	if n.isLeaf() {
		return 1
	}
	return leaves(n.left) + leaves(n.right)
}

// Fit trains a Tree by greedy CART: at each node it picks the split with
// the lowest weighted Gini impurity, stopping at MaxDepth, at pure nodes, or
// when no split improves impurity. Ties go to the earlier feature and the
// lower threshold, so training is deterministic. A leaf with an even class
// split predicts non-member.
func Fit(samples []Sample, opts FitOptions) (*Tree, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	if opts.MinLeaf < 1 {
		opts.MinLeaf = defaultMinLeaf
	}

	work := slices.Clone(samples)
	return &Tree{root: build(work, opts.MaxDepth, opts.MinLeaf)}, nil
}

func build(samples []Sample, depthLeft, minLeaf int) *node {
	pos := positives(samples)
	leaf := &node{member: 2*pos > len(samples)}
	if depthLeft <= 0 || pos == 0 || pos == len(samples) {
		return leaf
	}

	best, ok := bestSplit(samples, minLeaf)
	if !ok || best.impurity >= gini(pos, len(samples))*float64(len(samples)) {
		return leaf
	}

	sortByFeature(samples, best.feature)
	cut := 0
	for cut < len(samples) && best.feature.Value(samples[cut].Features) <= best.threshold {
		cut++
	}

	// Children own disjoint halves of the slice; re-sorting either side
	// never disturbs the other.
	return &node{
		feature:   best.feature,
		threshold: best.threshold,
		left:      build(samples[:cut], depthLeft-1, minLeaf),
		right:     build(samples[cut:], depthLeft-1, minLeaf),
	}
}

type split struct {
	feature   Feature
	threshold int
	impurity  float64 // Weighted Gini, scaled by sample count
}

func bestSplit(samples []Sample, minLeaf int) (split, bool) {
	var best split
	found := false
	total := len(samples)
	totalPos := positives(samples)

	for f := Feature(0); f < numFeatures; f++ {
		sortByFeature(samples, f)

		leftPos := 0
		for i := 0; i < total-1; i++ {
			if samples[i].Member {
				leftPos++
			}
			v := f.Value(samples[i].Features)
			if v == f.Value(samples[i+1].Features) {
				continue
			}
			leftN := i + 1
			rightN := total - leftN
			if leftN < minLeaf || rightN < minLeaf {
				continue
			}

			imp := gini(leftPos, leftN)*float64(leftN) + gini(totalPos-leftPos, rightN)*float64(rightN)
			if !found || imp < best.impurity {
				best = split{feature: f, threshold: v, impurity: imp}
				found = true
			}
		}
	}
	return best, found
}

func sortByFeature(samples []Sample, f Feature) {
	slices.SortStableFunc(samples, func(a, b Sample) int {
		return f.Value(a.Features) - f.Value(b.Features)
	})
}

func positives(samples []Sample) int {
	n := 0
	for _, s := range samples {
		if s.Member {
			n++
		}
	}
	return n
}

// gini returns the Gini impurity of a node with pos members out of n.
func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}
