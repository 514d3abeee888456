package emulator

import (
	"testing"

	"github.com/hopexn/cacheemu-go/trace"
)

func newLoader(ids, ts []int32, tBegin, tEnd, tInterval int32) *trace.Loader {
	l := trace.NewLoader()
	l.LoadDataset(ids, ts)
	l.SliceByTime(tBegin, tEnd, tInterval)
	return l
}

func contains(xs []int32, v int32) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Scenario 1: empty cache, no updates.
func TestActiveScenarioEmptyCacheNoUpdates(t *testing.T) {
	l := newLoader([]int32{1, 2, 1, 3}, []int32{0, 0, 0, 0}, 0, 1, 1)
	a := NewActive(3, l)

	triple := a.Step()
	if triple.Processed != 4 || triple.Missed != 3 || triple.Remaining != 0 {
		t.Fatalf("Step() = %+v, want {4 3 0}", triple)
	}

	for _, c := range a.CacheContents() {
		if c != trace.NoneContent {
			t.Fatalf("CacheContents() = %v, want all sentinel", a.CacheContents())
		}
	}

	wantCandidates := []int32{trace.NoneContent, trace.NoneContent, trace.NoneContent, 1, 2, 3}
	got := a.Candidates()
	if len(got) != len(wantCandidates) {
		t.Fatalf("Candidates() = %v, want %v", got, wantCandidates)
	}
	for i := range wantCandidates {
		if got[i] != wantCandidates[i] {
			t.Fatalf("Candidates() = %v, want %v", got, wantCandidates)
		}
	}

	wantFreq := []float64{0, 0, 0, 2, 1, 1}
	gotFreq := a.CandidateFrequencies()
	for i := range wantFreq {
		if gotFreq[i] != wantFreq[i] {
			t.Fatalf("CandidateFrequencies() = %v, want %v", gotFreq, wantFreq)
		}
	}
}

// Scenario 2: fill cache via updates.
func TestActiveScenarioFillCacheViaUpdate(t *testing.T) {
	l := newLoader([]int32{1, 2, 1, 3, 1, 4}, []int32{0, 0, 0, 0, 1, 1}, 0, 2, 1)
	a := NewActive(3, l)

	a.Step()
	a.UpdateCache([]int32{1, 2, 3})

	contents := a.CacheContents()
	for _, want := range []int32{1, 2, 3} {
		if !contains(contents, want) {
			t.Fatalf("CacheContents() = %v, missing %d", contents, want)
		}
	}

	triple := a.Step()
	if triple.Processed != 2 || triple.Missed != 1 {
		t.Fatalf("second Step() = %+v, want Processed=2 Missed=1", triple)
	}
	if a.GetMeanHitRate()*float64(6) < 0.99 { // hit_cnt should be 1 of 6 requests
		t.Fatalf("unexpected hit rate: %v", a.GetMeanHitRate())
	}

	wantCandidates := []int32{1, 2, 3, 4}
	got := a.Candidates()
	if len(got) != len(wantCandidates) {
		t.Fatalf("Candidates() = %v, want %v", got, wantCandidates)
	}
	for i := range wantCandidates {
		if got[i] != wantCandidates[i] {
			t.Fatalf("Candidates() = %v, want %v", got, wantCandidates)
		}
	}
}

// A single slice containing two distinct contents yields one Step per
// miss: the scan stops as soon as it hits a content not already cached,
// leaving the rest of the slice in the residual for the next Step.
func TestPassiveScenarioStopsAtFirstMiss(t *testing.T) {
	l := newLoader([]int32{1, 1, 2, 1}, []int32{0, 0, 0, 0}, 0, 1, 1)
	p := NewPassive(2, l)

	t1 := p.Step()
	if t1.Processed != 1 || t1.Missed != 1 || t1.Remaining != 3 {
		t.Fatalf("step 1 = %+v, want {1 1 3}", t1)
	}
	if !contains(p.Candidates(), 1) {
		t.Fatalf("step 1 candidates %v should contain 1", p.Candidates())
	}

	p.UpdateCache([]int32{1, trace.NoneContent})

	t2 := p.Step()
	if t2.Processed != 2 || t2.Missed != 1 || t2.Remaining != 1 {
		t.Fatalf("step 2 = %+v, want {2 1 1}", t2)
	}
}

func TestPassiveFrequencyPadding(t *testing.T) {
	l := newLoader([]int32{1, 2}, []int32{0, 0}, 0, 1, 1)
	p := NewPassive(3, l)

	p.Step()
	freqs := p.CandidateFrequencies()
	if len(freqs) != 4 { // capacity+1
		t.Fatalf("CandidateFrequencies() length = %d, want 4", len(freqs))
	}
}

// Episode accounting (scenario 6).
func TestEpisodeAccounting(t *testing.T) {
	ids := make([]int32, 20)
	ts := make([]int32, 20)
	for i := range ids {
		ts[i] = int32(i)
	}
	// Arrange contents so the first 10 requests have 3 hits and the
	// next 10 have 7, against a cache pre-populated with {1}.
	for i := 0; i < 10; i++ {
		if i < 3 {
			ids[i] = 1
		} else {
			ids[i] = int32(100 + i)
		}
	}
	for i := 10; i < 20; i++ {
		if i < 17 {
			ids[i] = 1
		} else {
			ids[i] = int32(200 + i)
		}
	}

	l := newLoader(ids, ts, 0, 20, 10)
	a := NewActive(1, l)
	a.UpdateCache([]int32{1})

	a.Step()
	rate1 := a.OnEpisodeEnd()
	if rate1 < 0.29 || rate1 > 0.31 {
		t.Fatalf("first episode hit rate = %v, want ~0.3", rate1)
	}

	a.Step()
	rate2 := a.OnEpisodeEnd()
	if rate2 < 0.69 || rate2 > 0.71 {
		t.Fatalf("second episode hit rate = %v, want ~0.7", rate2)
	}

	if a.GetIEpisode() != 2 {
		t.Fatalf("GetIEpisode() = %d, want 2", a.GetIEpisode())
	}
	if mean := a.GetMeanHitRate(); mean < 0.49 || mean > 0.51 {
		t.Fatalf("GetMeanHitRate() over both episodes = %v, want ~0.5", mean)
	}
}

func TestUpdateCacheIdempotent(t *testing.T) {
	l := newLoader([]int32{1}, []int32{0}, 0, 1, 1)
	a := NewActive(3, l)

	a.UpdateCache([]int32{1, 2, 3})
	first := append([]int32(nil), a.CacheContents()...)

	a.UpdateCache([]int32{1, 2, 3})
	second := a.CacheContents()

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("UpdateCache not idempotent: %v vs %v", first, second)
		}
	}
}

func TestActivePassiveAgreeOnHitCounts(t *testing.T) {
	ids := []int32{1, 2, 3, 1, 2, 1, 4, 5, 1, 2}
	ts := make([]int32, len(ids))
	for i := range ts {
		ts[i] = int32(i)
	}

	la := newLoader(ids, ts, 0, int32(len(ids)), int32(len(ids)))
	a := NewActive(3, la)
	a.Step()

	lp := newLoader(ids, ts, 0, int32(len(ids)), int32(len(ids)))
	p := NewPassive(3, lp)
	for !(p.Finished() && p.residualPos >= p.residual.Size()) {
		p.Step()
	}

	if a.requestCnt != p.requestCnt {
		t.Fatalf("request_cnt mismatch: active %d vs passive %d", a.requestCnt, p.requestCnt)
	}
	if a.hitCnt != p.hitCnt {
		t.Fatalf("hit_cnt mismatch: active %d vs passive %d", a.hitCnt, p.hitCnt)
	}
}

func TestMeanHitRateBounds(t *testing.T) {
	l := newLoader([]int32{1, 2, 3}, []int32{0, 0, 0}, 0, 1, 1)
	a := NewActive(2, l)
	a.Step()

	rate := a.GetMeanHitRate()
	if rate != 0 {
		t.Fatalf("GetMeanHitRate() = %v, want 0 (cache never updated)", rate)
	}
}
