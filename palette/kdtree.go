package palette

import (
	"container/heap"
	"math"
	"sort"
)

// colorNode is a node of a k-d tree over a catalog's display colors in
// RGB space. Each node keeps the catalog index of its entry so distance
// ties can be broken by catalog order after re-scoring.
type colorNode struct {
	index       int
	color       [3]float64
	left, right *colorNode
	splitAxis   int
}

type indexedColor struct {
	index int
	color [3]float64
}

// buildTree constructs a k-d tree over the palette's entries. The split
// axis at each level is the channel with the largest variance, which
// keeps the tree balanced for catalogs that cluster along one hue.
func buildTree(p *Palette) *colorNode {
	colors := make([]indexedColor, len(p.Entries))
	for i, e := range p.Entries {
		colors[i] = indexedColor{
			index: i,
			color: [3]float64{float64(e.R), float64(e.G), float64(e.B)},
		}
	}
	maxDepth := int(math.Log2(float64(len(colors)))) + 1
	return buildSubtree(colors, 0, maxDepth)
}

func buildSubtree(colors []indexedColor, depth, maxDepth int) *colorNode {
	if len(colors) == 0 || depth >= maxDepth {
		return nil
	}

	axis := chooseSplitAxis(colors)
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].color[axis] != colors[j].color[axis] {
			return colors[i].color[axis] < colors[j].color[axis]
		}
		return colors[i].index < colors[j].index
	})

	median := len(colors) / 2
	return &colorNode{
		index:     colors[median].index,
		color:     colors[median].color,
		left:      buildSubtree(colors[:median], depth+1, maxDepth),
		right:     buildSubtree(colors[median+1:], depth+1, maxDepth),
		splitAxis: axis,
	}
}

// chooseSplitAxis returns the channel with the largest variance across
// the given colors.
func chooseSplitAxis(colors []indexedColor) int {
	var mean, variance [3]float64
	for _, c := range colors {
		for axis := 0; axis < 3; axis++ {
			mean[axis] += c.color[axis]
		}
	}
	for axis := 0; axis < 3; axis++ {
		mean[axis] /= float64(len(colors))
	}
	for _, c := range colors {
		for axis := 0; axis < 3; axis++ {
			d := c.color[axis] - mean[axis]
			variance[axis] += d * d
		}
	}

	if variance[0] > variance[1] && variance[0] > variance[2] {
		return 0
	} else if variance[1] > variance[2] {
		return 1
	}
	return 2
}

// candidate pairs a catalog index with its Euclidean distance to the
// search target.
type candidate struct {
	index    int
	distance float64
}

// candidateHeap is a max-heap by distance so the current worst of the k
// best candidates sits at the root.
type candidateHeap []candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].distance > h[j].distance }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// kNearest returns the catalog indices of up to k entries nearest the
// target in Euclidean RGB space, closest first.
func (node *colorNode) kNearest(target [3]float64, k int) []int {
	pq := make(candidateHeap, 0, k)
	heap.Init(&pq)

	var search func(*colorNode)
	search = func(n *colorNode) {
		if n == nil {
			return
		}

		dist := euclidean(n.color, target)
		if pq.Len() < k {
			heap.Push(&pq, candidate{n.index, dist})
		} else if dist < pq[0].distance {
			heap.Pop(&pq)
			heap.Push(&pq, candidate{n.index, dist})
		}

		axisDist := target[n.splitAxis] - n.color[n.splitAxis]
		first, second := n.left, n.right
		if axisDist >= 0 {
			first, second = n.right, n.left
		}

		search(first)
		if pq.Len() < k || axisDist*axisDist < pq[0].distance*pq[0].distance {
			search(second)
		}
	}
	search(node)

	result := make([]int, pq.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&pq).(candidate).index
	}
	return result
}

func euclidean(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
