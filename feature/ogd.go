package feature

import (
	"container/heap"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hopexn/cacheemu-go/trace"
)

// StepRule selects one of the three OGD step-size (eta) rules. OGD
// extractors are always constructed directly through one of the New*
// constructors below, never deserialized from a config file, so
// StepRule carries no (de)serialization machinery of its own.
type StepRule string

const (
	// StepOptimal is eta = 1/sqrt(count+1).
	StepOptimal StepRule = "Optimal"
	// StepLRU is eta = 1.
	StepLRU StepRule = "LRU"
	// StepLFU is eta = 1/(count+1).
	StepLFU StepRule = "LFU"
)

func (r StepRule) eta(count int) float64 {
	switch r {
	case StepOptimal:
		return 1.0 / math.Sqrt(float64(count)+1.0)
	case StepLRU:
		return 1.0
	case StepLFU:
		return 1.0 / (float64(count) + 1.0)
	default:
		panic(fmt.Sprintf("feature: unknown OGD step rule %q", string(r)))
	}
}

// OGD implements the Online-Gradient-Descent family of extractors: a
// weight table synchronized with a minimum-heap, bounded by a
// high-water mark of 100*capacity entries, with per-batch
// normalization.
//
// Update applies one batched step per slice: a single eta is computed
// once per slice and applied once per request in it, rather than
// recomputing eta (and hence the step count) for every individual
// request.
type OGD struct {
	rule StepRule

	w       map[int32]*ogdEntry
	heap    ogdHeap
	wSum    float64
	count   int
	maxWLen int
}

// NewOGD returns a new OGD extractor using the given step rule, bounded
// to 100*cacheCapacity weight entries.
func NewOGD(rule StepRule, cacheCapacity int) *OGD {
	return &OGD{
		rule:    rule,
		w:       make(map[int32]*ogdEntry),
		heap:    ogdHeap{},
		maxWLen: 100 * cacheCapacity,
	}
}

// NewOGDOptimal returns an OGD extractor using the Optimal step rule.
func NewOGDOptimal(cacheCapacity int) *OGD { return NewOGD(StepOptimal, cacheCapacity) }

// NewOGDLRU returns an OGD extractor using the LRU step rule.
func NewOGDLRU(cacheCapacity int) *OGD { return NewOGD(StepLRU, cacheCapacity) }

// NewOGDLFU returns an OGD extractor using the LFU step rule.
func NewOGDLFU(cacheCapacity int) *OGD { return NewOGD(StepLFU, cacheCapacity) }

func (o *OGD) Reset() {
	o.w = make(map[int32]*ogdEntry)
	o.heap = ogdHeap{}
	o.wSum = 0
	o.count = 0
}

func (o *OGD) Dims() int { return 1 }

// Update applies one batched OGD step for the whole slice: a single eta
// is computed, every request in the slice bumps (or creates) its
// content's weight by eta, then the table is expired down to maxWLen
// and renormalized.
func (o *OGD) Update(s trace.Slice) {
	eta := o.rule.eta(o.count)

	for _, r := range s.All() {
		if e, ok := o.w[r.ContentID]; ok {
			e.weight += eta
			heap.Fix(&o.heap, e.index)
		} else {
			e := &ogdEntry{content: r.ContentID, weight: eta}
			o.w[r.ContentID] = e
			heap.Push(&o.heap, e)
		}
	}

	o.expireAndNormalize(eta)
	o.count++
}

// expireAndNormalize pops the minimum-weight entries until |W| is back
// within maxWLen, then divides every surviving weight by (wSum + eta -
// wDeleted) and recomputes wSum from the survivors.
func (o *OGD) expireAndNormalize(eta float64) {
	var wDeleted float64
	for len(o.w) > o.maxWLen {
		min := heap.Pop(&o.heap).(*ogdEntry)
		delete(o.w, min.content)
		wDeleted += min.weight
	}

	denom := o.wSum + eta - wDeleted
	weights := make([]float64, 0, len(o.w))
	for _, e := range o.w {
		e.weight /= denom
		weights = append(weights, e.weight)
	}
	o.wSum = floats.Sum(weights)
}

// GetFeatures returns W[c] for each content, or 0 if content has never
// been observed.
func (o *OGD) GetFeatures(contents []int32) []float64 {
	out := make([]float64, len(contents))
	for i, c := range contents {
		if e, ok := o.w[c]; ok {
			out[i] = e.weight
		}
	}
	return out
}
