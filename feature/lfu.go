package feature

import "github.com/hopexn/cacheemu-go/trace"

// LFU maintains a total access count per content; the feature is the
// count itself. Contents never seen read as 0.
type LFU struct {
	w map[int32]int64
}

// NewLFU returns a new LFU extractor.
func NewLFU() *LFU {
	return &LFU{w: make(map[int32]int64)}
}

func (l *LFU) Reset() {
	l.w = make(map[int32]int64)
}

func (l *LFU) Dims() int { return 1 }

func (l *LFU) Update(s trace.Slice) {
	for _, r := range s.All() {
		l.w[r.ContentID]++
	}
}

func (l *LFU) GetFeatures(contents []int32) []float64 {
	out := make([]float64, len(contents))
	for i, c := range contents {
		out[i] = float64(l.w[c])
	}
	return out
}
