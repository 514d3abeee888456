// Command cacheemu-demo drives an Active cache emulator over a small
// synthetic Zipf-ish trace with a naive greedy-by-feature replacement
// policy, reporting progress on a terminal progress bar as slices are
// consumed.
package main

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/samuelfneumann/progressbar"

	"github.com/hopexn/cacheemu-go/boundary"
	"github.com/hopexn/cacheemu-go/trace"
)

const (
	capacity    = 16
	numContents = 200
	numRequests = 20_000
	tInterval   = 100
)

func main() {
	rand.Seed(1)

	ids, timestamps := syntheticZipfTrace(numRequests, numContents)
	boundary.LoadDataset(ids, timestamps)

	numSlices := boundary.SliceDatasetByTime(0, timestamps[len(timestamps)-1]+1, tInterval)
	fmt.Printf("loaded %d requests across %d slices\n", numRequests, numSlices)

	handle := boundary.InitCacheEmu(capacity, false)
	boundary.SetupTraditionalFeatureTypes(handle, true, true, true)
	boundary.SetupSWLFUFeatureTypes(handle, []int{4})

	progBar := progressbar.New(50, numSlices, time.Second, true)
	progBar.Display()

	for !boundary.Finished(handle) {
		boundary.Step(handle)
		candidates := boundary.GetCandidates(handle)
		applyGreedyPolicy(handle, candidates)
		progBar.Increment()
	}
	progBar.Close()

	fmt.Printf("final mean hit rate: %.4f\n", boundary.GetMeanHitRate(handle))
}

// applyGreedyPolicy scores every candidate by its composed feature sum
// and keeps the top `capacity` of them — a stand-in for whatever
// learning agent a real caller would plug in to make replacement
// decisions.
func applyGreedyPolicy(handle int, candidates []int32) {
	dims := boundary.FeatureDims(handle)
	flat := boundary.GetFeatures(handle, candidates)

	type scored struct {
		content int32
		score   float64
	}
	scores := make([]scored, len(candidates))
	for i, c := range candidates {
		var sum float64
		for d := 0; d < dims; d++ {
			sum += flat[i*dims+d]
		}
		scores[i] = scored{content: c, score: sum}
	}

	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	newContents := make([]int32, 0, capacity)
	for i := 0; i < capacity && i < len(scores); i++ {
		newContents = append(newContents, scores[i].content)
	}
	for len(newContents) < capacity {
		newContents = append(newContents, trace.NoneContent)
	}

	boundary.UpdateCache(handle, newContents)
}

// syntheticZipfTrace generates a Zipf-distributed content popularity
// trace with monotonically non-decreasing timestamps.
func syntheticZipfTrace(n, numContents int) ([]int32, []int32) {
	z := rand.NewZipf(rand.New(rand.NewSource(1)), 1.5, 1, uint64(numContents-1))

	ids := make([]int32, n)
	timestamps := make([]int32, n)
	t := int32(0)
	for i := 0; i < n; i++ {
		ids[i] = int32(z.Uint64())
		if rand.Intn(4) == 0 {
			t++
		}
		timestamps[i] = t
	}
	return ids, timestamps
}
