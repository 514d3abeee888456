// Package feature implements the feature extractors driving the
// candidate feature vectors handed to the external controller, and the
// Manager that composes them.
package feature

import "github.com/hopexn/cacheemu-go/trace"

// Extractor is the shared contract of every feature extractor: it can
// be reset to its initial state, advanced by one slice of requests, and
// queried for the feature value of an arbitrary list of contents.
//
// Dims reports how many feature columns this extractor contributes;
// every extractor defined in this package reports 1, but the interface
// does not assume that.
type Extractor interface {
	Reset()
	Update(s trace.Slice)
	GetFeatures(contents []int32) []float64
	Dims() int
}
