package feature

import "github.com/hopexn/cacheemu-go/trace"

// LRU maintains the last-seen timestamp of every content and reports a
// feature that is larger the more recently a content was accessed, so
// its ordering matches LFU's (larger is more cache-worthy). Contents
// never seen read as the initial W value of -1. The per-content table
// is a sparse map keyed by content id rather than a dense array sized
// to some maximum content id.
type LRU struct {
	w      map[int32]int32
	latest int32
}

// NewLRU returns a new LRU extractor.
func NewLRU() *LRU {
	return &LRU{w: make(map[int32]int32), latest: -1}
}

func (l *LRU) Reset() {
	l.w = make(map[int32]int32)
	l.latest = -1
}

func (l *LRU) Dims() int { return 1 }

// Update records the timestamp of every request in the slice and
// advances latest to the timestamp of the slice's last request.
func (l *LRU) Update(s trace.Slice) {
	if s.Empty() {
		return
	}
	for _, r := range s.All() {
		l.w[r.ContentID] = r.Timestamp
	}
	l.latest = s.At(-1).Timestamp
}

// GetFeatures returns -(latest - W[c]) for each content, with W[c]
// defaulting to -1 for contents never seen.
func (l *LRU) GetFeatures(contents []int32) []float64 {
	out := make([]float64, len(contents))
	for i, c := range contents {
		last, ok := l.w[c]
		if !ok {
			last = -1
		}
		out[i] = -float64(l.latest - last)
	}
	return out
}
