package feature

import "github.com/hopexn/cacheemu-go/trace"

// SWLFU is LFU over a sliding window of slices: a per-content counter
// plus a running total, where the total is kept equal to the number of
// requests in the current slice and the windowLen slices before it.
type SWLFU struct {
	w                  map[int32]int64
	historyNumRequests int64
	windowLen          int
	iSlice             int
	loader             *trace.Loader
}

// NewSWLFU returns a new SWLFU extractor with the given window length
// (in slices), reading historical slices from loader as needed to
// expire old counts.
func NewSWLFU(windowLen int, loader *trace.Loader) *SWLFU {
	return &SWLFU{
		w:         make(map[int32]int64),
		windowLen: windowLen,
		loader:    loader,
	}
}

func (s *SWLFU) Reset() {
	s.w = make(map[int32]int64)
	s.historyNumRequests = 0
	s.iSlice = 0
}

func (s *SWLFU) Dims() int { return 1 }

// Update increments the counters for every request in the slice, then
// expires counts that have fallen out of the trailing window.
func (s *SWLFU) Update(sl trace.Slice) {
	for _, r := range sl.All() {
		s.w[r.ContentID]++
	}
	s.historyNumRequests += int64(sl.Size())

	if sl.Empty() {
		return
	}
	s.expire(sl.At(-1).Timestamp)
}

// expire removes the requests that have aged out of the trailing
// window as of currTimestamp, by re-visiting and reversing the
// historical slices that just left the window.
func (s *SWLFU) expire(currTimestamp int32) {
	currISlice := s.loader.GetISliceByTimestamp(currTimestamp)
	if currISlice == s.iSlice || currISlice <= s.windowLen {
		return
	}

	begin := max0(s.iSlice - s.windowLen)
	end := max0(currISlice - s.windowLen)

	for j := begin; j < end; j++ {
		historical := s.loader.Slice(j)
		for _, r := range historical.All() {
			s.w[r.ContentID]--
		}
		s.historyNumRequests -= int64(historical.Size())
	}

	s.iSlice = currISlice
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// GetFeatures returns W[c] / (historyNumRequests + epsilon) for each
// content.
func (s *SWLFU) GetFeatures(contents []int32) []float64 {
	out := make([]float64, len(contents))
	denom := float64(s.historyNumRequests) + trace.Epsilon
	for i, c := range contents {
		out[i] = float64(s.w[c]) / denom
	}
	return out
}
