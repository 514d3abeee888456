package trace

// Slice is a half-open, non-owning view [0, Size()) into a contiguous
// run of a Loader's request sequence. A Slice is a plain Go slice under
// the hood, so it shares the Loader's backing array rather than copying
// it — callers must not retain a Slice past the lifetime of the Loader
// that produced it.
type Slice struct {
	requests []Request
}

// Size returns the number of requests in the slice.
func (s Slice) Size() int {
	return len(s.requests)
}

// Empty reports whether the slice has no requests.
func (s Slice) Empty() bool {
	return len(s.requests) == 0
}

// At returns the request at idx. A negative idx counts back from the end
// (At(-1) is the last request). At panics with an OutOfRangeError if idx
// (after normalization) is outside [0, Size()).
func (s Slice) At(idx int) Request {
	if idx < 0 {
		idx += len(s.requests)
	}
	if idx < 0 || idx >= len(s.requests) {
		panic(OutOfRangeError{Op: "Slice.At", Value: idx, Low: 0, High: len(s.requests) - 1})
	}
	return s.requests[idx]
}

// Sub returns the sub-view [beg, end) of the slice. end == -1 means "to
// the end of the slice". Sub panics with an OutOfRangeError if the
// bounds are invalid.
func (s Slice) Sub(beg, end int) Slice {
	if end == -1 {
		end = len(s.requests)
	}
	if beg < 0 || end > len(s.requests) || beg > end {
		panic(OutOfRangeError{Op: "Slice.Sub", Value: beg, Low: 0, High: len(s.requests)})
	}
	return Slice{requests: s.requests[beg:end]}
}

// All returns the requests of the slice in order. The returned slice
// shares the Loader's backing array and must be treated as read-only.
func (s Slice) All() []Request {
	return s.requests
}
