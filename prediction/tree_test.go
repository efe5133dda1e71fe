package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeSeparatesClusters(t *testing.T) {
	xs := [][]float64{{1}, {2}, {10}, {11}}
	ys := []float64{5, 5, 50, 50}

	root := buildTree(xs, ys, []int{0, 1, 2, 3}, 0, 5)
	assert.InDelta(t, 5.0, root.predict([]float64{1.5}), 1e-9)
	assert.InDelta(t, 50.0, root.predict([]float64{10.5}), 1e-9)
}

func TestBuildTreePicksDiscriminativeFeature(t *testing.T) {
	// Feature 0 is noise, feature 1 separates the targets perfectly.
	xs := [][]float64{{7, 1}, {3, 2}, {9, 8}, {1, 9}}
	ys := []float64{10, 10, 80, 80}

	root := buildTree(xs, ys, []int{0, 1, 2, 3}, 0, 5)
	require.False(t, root.leaf)
	assert.Equal(t, 1, root.feature)
	assert.InDelta(t, 10.0, root.predict([]float64{5, 1.5}), 1e-9)
	assert.InDelta(t, 80.0, root.predict([]float64{5, 8.5}), 1e-9)
}

func TestBuildTreeDepthLimit(t *testing.T) {
	xs := [][]float64{{1}, {2}, {3}, {4}}
	ys := []float64{1, 2, 3, 4}

	root := buildTree(xs, ys, []int{0, 1, 2, 3}, 0, 0)
	require.True(t, root.leaf)
	assert.InDelta(t, 2.5, root.value, 1e-9)
}

func TestBuildTreeConstantFeatures(t *testing.T) {
	xs := [][]float64{{3}, {3}, {3}}
	ys := []float64{1, 2, 3}

	root := buildTree(xs, ys, []int{0, 1, 2}, 0, 5)
	require.True(t, root.leaf)
	assert.InDelta(t, 2.0, root.value, 1e-9)
}

func TestBestSplitMidpointThreshold(t *testing.T) {
	xs := [][]float64{{2}, {4}}
	ys := []float64{0, 100}

	feature, threshold, ok := bestSplit(xs, ys, []int{0, 1})
	require.True(t, ok)
	assert.Equal(t, 0, feature)
	assert.InDelta(t, 3.0, threshold, 1e-9)
}
