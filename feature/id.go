package feature

import "github.com/hopexn/cacheemu-go/trace"

// Id is the identity feature extractor: feature[c] = c. It carries no
// state.
type Id struct{}

// NewId returns a new Id extractor.
func NewId() *Id { return &Id{} }

func (*Id) Reset()             {}
func (*Id) Update(trace.Slice) {}
func (*Id) Dims() int          { return 1 }

// GetFeatures returns each content's id cast to float64.
func (*Id) GetFeatures(contents []int32) []float64 {
	out := make([]float64, len(contents))
	for i, c := range contents {
		out[i] = float64(c)
	}
	return out
}
