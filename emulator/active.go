package emulator

import "github.com/hopexn/cacheemu-go/trace"

// Active is the batch stepping discipline: each Step call consumes one
// entire slice of the loader, hit-tests every request in it against
// the cache, advances every installed feature extractor by that same
// slice, and reports the misses as candidates for the caller's next
// UpdateCache decision.
type Active struct {
	*Emulator
}

// NewActive returns an Active emulator wrapping a freshly constructed
// Emulator.
func NewActive(capacity int, loader *trace.Loader) *Active {
	return &Active{Emulator: New(capacity, loader)}
}

// Step consumes the next slice in full. Processed is the number of
// requests in that slice, Missed is the number of distinct contents
// that were not already in the cache when first requested within the
// slice, and Remaining is always 0 (active mode has no notion of a
// partially consumed slice). Step panics if Finished is already true.
func (a *Active) Step() Triple {
	if a.Finished() {
		panic("emulator.Active.Step: called after the loader is exhausted")
	}

	s := a.loader.Slice(a.iSlice)
	a.iSlice++

	missed := a.stepOverSlice(s)

	a.features.Update(s)
	a.finishStep(missed)

	return Triple{
		Processed: s.Size(),
		Missed:    len(missed),
		Remaining: 0,
	}
}

// stepOverSlice hit-tests every request of s against the cache,
// accounting request/hit counters, and returns the distinct set of
// contents missed, in first-seen order.
func (a *Active) stepOverSlice(s trace.Slice) []int32 {
	seen := make(map[int32]bool)
	var missed []int32

	reqs := s.All()
	a.addProcessed(len(reqs))
	a.stepElements = a.stepElements[:0]

	for _, r := range reqs {
		a.stepElements = append(a.stepElements, r.ContentID)
		hit := a.recordHit(r.ContentID)
		if !hit && !seen[r.ContentID] {
			seen[r.ContentID] = true
			missed = append(missed, r.ContentID)
		}
	}
	return missed
}
