package trace

import "fmt"

// Loader owns the append-only request sequence and the time-slice
// partition computed over it. It is meant to be a single, process-wide,
// shared (read-only once sliced) instance — any number of cache
// emulators may hold a reference to the same Loader without copying
// its request buffer.
type Loader struct {
	requests []Request

	sliceBeg []int
	sliceEnd []int

	tBegin, tEnd, tInterval int32
}

// NewLoader returns an empty Loader ready to receive LoadDataset calls.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadDataset appends ids/timestamps pairwise to the request sequence.
// Timestamps are assumed (not enforced) to be non-decreasing. LoadDataset
// panics if the two slices differ in length, since that is a
// precondition violation a correct caller never triggers.
func (l *Loader) LoadDataset(ids []int32, timestamps []int32) {
	if len(ids) != len(timestamps) {
		panic(fmt.Sprintf("Loader.LoadDataset: ids length %d != timestamps length %d",
			len(ids), len(timestamps)))
	}
	for i := range ids {
		l.requests = append(l.requests, Request{ContentID: ids[i], Timestamp: timestamps[i]})
	}
}

// NumRequests returns the number of requests loaded so far.
func (l *Loader) NumRequests() int {
	return len(l.requests)
}

// SliceByTime partitions the loaded requests into
// ceil((tEnd-tBegin)/tInterval) contiguous, non-overlapping time-slices
// via a single linear scan, and returns the number of slices produced.
// Slice i covers timestamps in [tBegin + i*tInterval, tBegin +
// (i+1)*tInterval).
func (l *Loader) SliceByTime(tBegin, tEnd, tInterval int32) int {
	l.tBegin, l.tEnd, l.tInterval = tBegin, tEnd, tInterval

	numSlices := ceilDiv(tEnd-tBegin, tInterval)

	l.sliceBeg = make([]int, 0, numSlices)
	l.sliceEnd = make([]int, 0, numSlices)

	ptr := 0
	last := tBegin
	for i := 0; i < numSlices; i++ {
		next := last + tInterval
		beg := ptr
		for ptr < len(l.requests) && l.requests[ptr].Timestamp < next {
			ptr++
		}
		l.sliceBeg = append(l.sliceBeg, beg)
		l.sliceEnd = append(l.sliceEnd, ptr)
		last = next
	}

	return numSlices
}

// NumSlices returns the number of slices computed by SliceByTime.
func (l *Loader) NumSlices() int {
	return len(l.sliceBeg)
}

// SliceRangePtrs returns the [beg, end) request-index range covered by
// slice i. It panics with an OutOfRangeError if i is not a valid slice
// index.
func (l *Loader) SliceRangePtrs(i int) (beg, end int) {
	if i < 0 || i >= len(l.sliceBeg) {
		panic(OutOfRangeError{Op: "Loader.SliceRangePtrs", Value: i, Low: 0, High: len(l.sliceBeg) - 1})
	}
	return l.sliceBeg[i], l.sliceEnd[i]
}

// GetSlice returns the borrowed Slice view over request indices
// [beg, end).
func (l *Loader) GetSlice(beg, end int) Slice {
	if beg < 0 || end > len(l.requests) || beg > end {
		panic(OutOfRangeError{Op: "Loader.GetSlice", Value: beg, Low: 0, High: len(l.requests)})
	}
	return Slice{requests: l.requests[beg:end]}
}

// Slice returns the borrowed Slice view for slice index i directly,
// combining SliceRangePtrs and GetSlice.
func (l *Loader) Slice(i int) Slice {
	beg, end := l.SliceRangePtrs(i)
	return l.GetSlice(beg, end)
}

// GetISliceByTimestamp maps a timestamp to the slice index that covers
// it via integer division. It is defined only for t in [tBegin, tEnd]
// and panics with an OutOfRangeError otherwise.
func (l *Loader) GetISliceByTimestamp(t int32) int {
	if t < l.tBegin || t > l.tEnd {
		panic(OutOfRangeError{Op: "Loader.GetISliceByTimestamp", Value: int(t), Low: int(l.tBegin), High: int(l.tEnd)})
	}
	return int((t - l.tBegin) / l.tInterval)
}

func ceilDiv(num, den int32) int {
	if num <= 0 {
		return 0
	}
	q := num / den
	if num%den != 0 {
		q++
	}
	return int(q)
}
