package feature

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hopexn/cacheemu-go/trace"
)

// Manager owns an ordered list of Extractors and composes their
// per-content feature columns into a single dense
// (content_dims x feature_dims) matrix, column order following
// registration order.
type Manager struct {
	extractors []Extractor
	dims       int
}

// NewManager returns an empty Feature Manager with no extractors
// installed.
func NewManager() *Manager {
	return &Manager{}
}

// Add registers an extractor, appending its columns to the end of the
// composed feature matrix.
func (m *Manager) Add(e Extractor) {
	m.extractors = append(m.extractors, e)
	m.dims += e.Dims()
}

// Dims returns the total number of feature columns across every
// registered extractor.
func (m *Manager) Dims() int {
	return m.dims
}

// Reset resets every registered extractor. Extractors themselves are
// never dropped by Reset — reinstalling them after every reset would
// force callers to rebuild their feature configuration each episode.
func (m *Manager) Reset() {
	for _, e := range m.extractors {
		e.Reset()
	}
}

// Update advances every registered extractor by one slice.
func (m *Manager) Update(s trace.Slice) {
	for _, e := range m.extractors {
		e.Update(s)
	}
}

// GetFeatures returns the (len(contents) x Dims()) dense feature
// matrix for the given contents, with each extractor's columns placed
// in registration order.
func (m *Manager) GetFeatures(contents []int32) *mat.Dense {
	rows := len(contents)
	out := mat.NewDense(rows, m.dims, nil)

	col := 0
	for _, e := range m.extractors {
		edims := e.Dims()
		values := e.GetFeatures(contents)
		for r := 0; r < rows; r++ {
			for d := 0; d < edims; d++ {
				out.Set(r, col+d, values[r*edims+d])
			}
		}
		col += edims
	}
	return out
}
