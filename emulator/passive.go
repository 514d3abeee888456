package emulator

import "github.com/hopexn/cacheemu-go/trace"

// Passive is the one-miss-per-step stepping discipline: a single call
// to Step loads at most one new slice (only when the residual is
// currently empty), then scans forward from the residual's current
// position until either a miss occurs or the residual is exhausted —
// it never reaches into a second slice within the same call. When the
// residual is freshly loaded, iSlice is advanced immediately, so a
// slice is considered consumed as soon as its scan begins rather than
// only once it finishes.
type Passive struct {
	*Emulator

	residual    trace.Slice
	residualPos int
}

// NewPassive returns a Passive emulator wrapping a freshly constructed
// Emulator.
func NewPassive(capacity int, loader *trace.Loader) *Passive {
	return &Passive{Emulator: New(capacity, loader)}
}

// Reset additionally clears the residual slice state.
func (p *Passive) Reset() {
	p.Emulator.Reset()
	p.residual = trace.Slice{}
	p.residualPos = 0
}

// Step loads a new residual slice only if the current one is fully
// consumed, then scans it from the current position, stopping at the
// first miss or at the residual's end. Processed is the number of
// requests examined this call, Missed is 0 or 1, and Remaining is the
// number of requests left unprocessed in the (possibly just-loaded)
// residual. Step panics if Finished is already true and the residual
// is empty.
func (p *Passive) Step() Triple {
	if p.residualPos >= p.residual.Size() {
		if p.Finished() {
			panic("emulator.Passive.Step: called after the loader is exhausted")
		}
		p.residual = p.loader.Slice(p.iSlice)
		p.iSlice++
		p.residualPos = 0
	}

	start := p.residualPos
	p.stepElements = p.stepElements[:0]

	var missed *int32
	for p.residualPos < p.residual.Size() {
		r := p.residual.At(p.residualPos)
		p.residualPos++
		p.stepElements = append(p.stepElements, r.ContentID)

		hit := p.recordHit(r.ContentID)
		if !hit {
			c := r.ContentID
			missed = &c
			break
		}
	}

	processed := p.residualPos - start
	p.addProcessed(processed)
	p.features.Update(p.residual.Sub(start, p.residualPos))
	p.finishPassiveStep(missed)

	missedCount := 0
	if missed != nil {
		missedCount = 1
	}

	return Triple{
		Processed: processed,
		Missed:    missedCount,
		Remaining: p.residual.Size() - p.residualPos,
	}
}
