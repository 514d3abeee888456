// Package emulator implements the Cache Emulator: the component that
// drives a trace.Loader and cache.Cache through a feature.Manager,
// exposing candidates/features/statistics to an external controller
// and applying its replacement decisions.
package emulator

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hopexn/cacheemu-go/cache"
	"github.com/hopexn/cacheemu-go/feature"
	"github.com/hopexn/cacheemu-go/trace"
)

// Triple is the per-step outcome returned by Step: (processed, missed,
// remaining), whose meaning differs slightly between Active and
// Passive stepping disciplines.
type Triple struct {
	Processed int
	Missed    int
	Remaining int
}

// Stepper is the contract shared by the two stepping disciplines.
// Active consumes one whole slice per Step; Passive consumes up to one
// miss per Step.
type Stepper interface {
	Step() Triple
}

// Emulator holds everything common to both stepping disciplines: the
// owned Cache and Feature Manager, a borrowed read-only Loader,
// counters, episode bookkeeping, and the output buffers exposed to
// callers driving the simulation.
type Emulator struct {
	capacity int
	cache    *cache.Cache
	features *feature.Manager
	loader   *trace.Loader

	requestCnt, hitCnt               int64
	episodeRequestCnt, episodeHitCnt int64

	iSlice   int
	iEpisode int

	episodeHitRates []float64

	stepElements  []int32
	candidates    []int32
	candidateFreq []float64
}

// New returns a new Emulator with the given capacity against loader.
// No feature extractors are installed; call the Use*Feature methods
// before the first Step.
func New(capacity int, loader *trace.Loader) *Emulator {
	e := &Emulator{
		capacity: capacity,
		cache:    cache.New(capacity),
		features: feature.NewManager(),
		loader:   loader,
	}
	e.seedCandidates()
	return e
}

// Capacity returns the cache capacity the Emulator was constructed
// with.
func (e *Emulator) Capacity() int { return e.capacity }

// UseIdFeature installs the identity feature extractor.
func (e *Emulator) UseIdFeature() { e.features.Add(feature.NewId()) }

// UseLRUFeature installs the LRU feature extractor.
func (e *Emulator) UseLRUFeature() { e.features.Add(feature.NewLRU()) }

// UseLFUFeature installs the LFU feature extractor.
func (e *Emulator) UseLFUFeature() { e.features.Add(feature.NewLFU()) }

// UseSWLFUFeature installs a sliding-window LFU extractor with the
// given window length (in slices).
func (e *Emulator) UseSWLFUFeature(windowLen int) {
	e.features.Add(feature.NewSWLFU(windowLen, e.loader))
}

// UseOGDOptimalFeature installs the OGD-Optimal extractor.
func (e *Emulator) UseOGDOptimalFeature() { e.features.Add(feature.NewOGDOptimal(e.capacity)) }

// UseOGDLRUFeature installs the OGD-LRU extractor.
func (e *Emulator) UseOGDLRUFeature() { e.features.Add(feature.NewOGDLRU(e.capacity)) }

// UseOGDLFUFeature installs the OGD-LFU extractor.
func (e *Emulator) UseOGDLFUFeature() { e.features.Add(feature.NewOGDLFU(e.capacity)) }

// FeatureDims returns the total number of feature columns across every
// installed extractor.
func (e *Emulator) FeatureDims() int { return e.features.Dims() }

// GetFeatures returns the composed feature matrix for the given
// contents.
func (e *Emulator) GetFeatures(contents []int32) *mat.Dense {
	return e.features.GetFeatures(contents)
}

// Reset zeroes both global and episode counters, resets the Cache and
// every installed feature extractor (without dropping them), and
// reseeds the candidate buffers from the now-empty cache.
func (e *Emulator) Reset() {
	e.iSlice = 0
	e.iEpisode = 0

	e.requestCnt = 0
	e.hitCnt = 0
	e.episodeRequestCnt = 0
	e.episodeHitCnt = 0
	e.episodeHitRates = nil

	e.cache.Reset()
	e.features.Reset()

	e.seedCandidates()
}

// seedCandidates rebuilds the candidate/frequency buffers directly
// from the cache's current (possibly just-reset) contents.
func (e *Emulator) seedCandidates() {
	e.candidates = append([]int32(nil), e.cache.Contents()...)
	e.candidateFreq = e.int64ToFloat(e.cache.GetFrequencies(e.candidates))
	e.cache.ClearFrequencies()
}

func (e *Emulator) int64ToFloat(in []int64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// CacheContents returns a copy of the cache's slot array.
func (e *Emulator) CacheContents() []int32 {
	return append([]int32(nil), e.cache.Contents()...)
}

// Candidates returns the candidate set emitted by the most recent
// Step: the current cache contents followed by this step's miss(es).
// The returned slice is only valid until the next mutating call.
func (e *Emulator) Candidates() []int32 { return e.candidates }

// CandidateFrequencies returns the per-candidate hit counts
// accumulated since the last step's ClearFrequencies, in the same
// order as Candidates.
func (e *Emulator) CandidateFrequencies() []float64 { return e.candidateFreq }

// StepElements returns the requests processed by the most recent Step,
// in order.
func (e *Emulator) StepElements() []int32 { return e.stepElements }

// NumStepElements returns len(StepElements()).
func (e *Emulator) NumStepElements() int { return len(e.stepElements) }

// Finished reports whether every slice of the loader has been
// consumed.
func (e *Emulator) Finished() bool { return e.iSlice >= e.loader.NumSlices() }

// ISlice returns the index of the next slice to be consumed.
func (e *Emulator) ISlice() int { return e.iSlice }

// GetMeanHitRate returns hit_cnt / (request_cnt + epsilon) over the
// Emulator's entire lifetime (across episode boundaries).
func (e *Emulator) GetMeanHitRate() float64 {
	return float64(e.hitCnt) / (float64(e.requestCnt) + trace.Epsilon)
}

// GetIEpisode returns the current episode index.
func (e *Emulator) GetIEpisode() int { return e.iEpisode }

// OnEpisodeEnd computes this episode's hit rate, appends it to the
// episode-hit-rate history, clears the episode counters, advances the
// episode index, and returns the rate just computed. The engine never
// decides an episode boundary itself — callers invoke this whenever
// they consider an episode to have ended.
func (e *Emulator) OnEpisodeEnd() float64 {
	rate := float64(e.episodeHitCnt) / (float64(e.episodeRequestCnt) + trace.Epsilon)
	e.episodeHitRates = append(e.episodeHitRates, rate)

	e.episodeRequestCnt = 0
	e.episodeHitCnt = 0
	e.iEpisode++

	return rate
}

// EpisodeHitRates returns the full per-episode hit-rate history
// recorded by OnEpisodeEnd so far.
func (e *Emulator) EpisodeHitRates() []float64 {
	return append([]float64(nil), e.episodeHitRates...)
}

// MeanEpisodeHitRate returns the mean of EpisodeHitRates. It returns 0
// if no episode has ended yet.
func (e *Emulator) MeanEpisodeHitRate() float64 {
	if len(e.episodeHitRates) == 0 {
		return 0
	}
	return stat.Mean(e.episodeHitRates, nil)
}

// UpdateCache rewrites the cache's occupancy to newContents: contents
// already present survive untouched, the rest are paired up in sorted
// order and swapped in with Cache.Replace, and any leftover new
// contents fill remaining empty slots.
func (e *Emulator) UpdateCache(newContents []int32) {
	e.checkCapacityMatch(len(newContents))

	oldSet := newOrderedSet(e.cache.Contents())
	newSet := newOrderedSet(newContents)

	oldSet.remove(trace.NoneContent)
	newSet.remove(trace.NoneContent)

	for _, c := range newContents {
		if c != trace.NoneContent && e.cache.Find(c) != -1 {
			oldSet.remove(c)
			newSet.remove(c)
		}
	}

	oldSorted := oldSet.sorted()
	newSorted := newSet.sorted()

	n := len(oldSorted)
	if len(newSorted) < n {
		n = len(newSorted)
	}
	for i := 0; i < n; i++ {
		e.cache.Replace(newSorted[i], oldSorted[i])
	}
	for i := n; i < len(newSorted); i++ {
		e.cache.Replace(newSorted[i], trace.NoneContent)
	}
}

// finishStep is the tail of Active.Step: it rebuilds candidates from
// the current cache contents plus the caller-supplied miss set (sorted
// by content id, so the candidate order is deterministic), reads
// their accumulated frequencies, and clears the frequency map for the
// next step.
func (e *Emulator) finishStep(missed []int32) {
	sorted := append([]int32(nil), missed...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	e.candidates = append([]int32(nil), e.cache.Contents()...)
	e.candidates = append(e.candidates, sorted...)

	freqs := e.cache.GetFrequencies(e.candidates)
	e.candidateFreq = e.int64ToFloat(freqs)
	e.cache.ClearFrequencies()
}

// finishPassiveStep is the tail of Passive.Step: candidates are cache
// contents plus, only if a miss occurred, the single missed content;
// candidate_frequencies is then zero-padded to capacity+1 regardless
// of how many candidates there were, so callers can rely on a fixed
// buffer width regardless of whether a miss occurred.
func (e *Emulator) finishPassiveStep(missed *int32) {
	e.candidates = append([]int32(nil), e.cache.Contents()...)
	if missed != nil {
		e.candidates = append(e.candidates, *missed)
	}

	freqs := e.int64ToFloat(e.cache.GetFrequencies(e.candidates))
	for len(freqs) < e.capacity+1 {
		freqs = append(freqs, 0)
	}
	e.candidateFreq = freqs
	e.cache.ClearFrequencies()
}

func (e *Emulator) recordHit(content int32) bool {
	hit := e.cache.HitTest(content)
	if hit {
		e.hitCnt++
		e.episodeHitCnt++
	}
	return hit
}

func (e *Emulator) addProcessed(n int) {
	e.requestCnt += int64(n)
	e.episodeRequestCnt += int64(n)
}

func (e *Emulator) checkCapacityMatch(got int) {
	if got > e.capacity {
		panic(fmt.Sprintf("emulator.UpdateCache: %d contents exceeds capacity %d", got, e.capacity))
	}
}

// orderedSet is a small sorted-by-content-id set used to give
// UpdateCache's pairwise replacement a deterministic iteration order;
// an unordered set would leave the specific slot assignment
// nondeterministic even though the final cache occupancy would still
// converge.
type orderedSet struct {
	m map[int32]struct{}
}

func newOrderedSet(values []int32) *orderedSet {
	s := &orderedSet{m: make(map[int32]struct{}, len(values))}
	for _, v := range values {
		s.m[v] = struct{}{}
	}
	return s
}

func (s *orderedSet) remove(v int32) { delete(s.m, v) }

func (s *orderedSet) sorted() []int32 {
	out := make([]int32, 0, len(s.m))
	for v := range s.m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
