package prediction

import (
	"math"
	"sort"
)

// treeNode is one node of a variance-minimizing regression tree. Leaves
// carry the mean target of their training subset.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (t *treeNode) predict(x []float64) float64 {
	for !t.leaf {
		if x[t.feature] <= t.threshold {
			t = t.left
		} else {
			t = t.right
		}
	}
	return t.value
}

// buildTree grows a tree over the sample indices idx, splitting greedily on
// the feature/threshold pair that minimizes the summed squared error of the
// two halves.
func buildTree(xs [][]float64, ys []float64, idx []int, depth, maxDepth int) *treeNode {
	if depth >= maxDepth || len(idx) < 2 || constantTargets(ys, idx) {
		return &treeNode{leaf: true, value: meanOf(ys, idx)}
	}

	feature, threshold, ok := bestSplit(xs, ys, idx)
	if !ok {
		return &treeNode{leaf: true, value: meanOf(ys, idx)}
	}

	var left, right []int
	for _, i := range idx {
		if xs[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(xs, ys, left, depth+1, maxDepth),
		right:     buildTree(xs, ys, right, depth+1, maxDepth),
	}
}

// bestSplit scans every feature with a sorted sweep and prefix sums; a
// candidate threshold is the midpoint between consecutive distinct values.
// ok is false when no feature separates the subset.
func bestSplit(xs [][]float64, ys []float64, idx []int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	bestSSE := math.Inf(1)
	feature = -1

	order := make([]int, n)
	sumY := make([]float64, n+1)
	sumY2 := make([]float64, n+1)

	for f := 0; f < len(xs[idx[0]]); f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return xs[order[a]][f] < xs[order[b]][f] })

		for i, sample := range order {
			y := ys[sample]
			sumY[i+1] = sumY[i] + y
			sumY2[i+1] = sumY2[i] + y*y
		}

		for split := 1; split < n; split++ {
			lo, hi := xs[order[split-1]][f], xs[order[split]][f]
			if lo == hi {
				continue
			}
			leftN, rightN := float64(split), float64(n-split)
			leftSSE := sumY2[split] - sumY[split]*sumY[split]/leftN
			rightSum := sumY[n] - sumY[split]
			rightSSE := (sumY2[n] - sumY2[split]) - rightSum*rightSum/rightN

			if sse := leftSSE + rightSSE; sse < bestSSE {
				bestSSE = sse
				feature = f
				threshold = (lo + hi) / 2
			}
		}
	}

	if feature < 0 {
		return 0, 0, false
	}
	return feature, threshold, true
}

func meanOf(ys []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += ys[i]
	}
	return sum / float64(len(idx))
}

func constantTargets(ys []float64, idx []int) bool {
	first := ys[idx[0]]
	for _, i := range idx[1:] {
		if ys[i] != first {
			return false
		}
	}
	return true
}
