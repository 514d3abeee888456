package feature

// ogdEntry is a single content's weight entry, shared between the W
// map and the min-heap so that a weight update is visible from both
// structures without duplicating state.
type ogdEntry struct {
	content int32
	weight  float64
	index   int // position in the heap slice, maintained by container/heap
}

// ogdHeap is a container/heap min-heap over *ogdEntry ordered by
// ascending weight, so its root is always the globally minimum weight.
type ogdHeap []*ogdEntry

func (h ogdHeap) Len() int { return len(h) }

func (h ogdHeap) Less(i, j int) bool { return h[i].weight < h[j].weight }

func (h ogdHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *ogdHeap) Push(x any) {
	e := x.(*ogdEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *ogdHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
