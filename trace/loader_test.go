package trace

import "testing"

func TestLoaderSliceByTime(t *testing.T) {
	l := NewLoader()
	ids := []int32{1, 2, 1, 3, 4, 4, 5}
	ts := []int32{0, 0, 1, 3, 4, 5, 9}
	l.LoadDataset(ids, ts)

	numSlices := l.SliceByTime(0, 10, 2)
	want := 5 // ceil((10-0)/2)
	if numSlices != want {
		t.Fatalf("SliceByTime: got %d slices, want %d", numSlices, want)
	}
	if l.NumSlices() != want {
		t.Fatalf("NumSlices: got %d, want %d", l.NumSlices(), want)
	}

	for i := 0; i < l.NumSlices(); i++ {
		s := l.Slice(i)
		for _, r := range s.All() {
			got := l.GetISliceByTimestamp(r.Timestamp)
			if got != i {
				t.Fatalf("request ts=%d in slice %d maps back to slice %d", r.Timestamp, i, got)
			}
		}
	}
}

func TestLoaderSliceRangesContiguous(t *testing.T) {
	l := NewLoader()
	l.LoadDataset([]int32{1, 2, 3, 4}, []int32{0, 1, 2, 3})
	l.SliceByTime(0, 4, 1)

	prevEnd := 0
	for i := 0; i < l.NumSlices(); i++ {
		beg, end := l.SliceRangePtrs(i)
		if beg != prevEnd {
			t.Fatalf("slice %d: beg %d != previous end %d", i, beg, prevEnd)
		}
		if end < beg {
			t.Fatalf("slice %d: end %d < beg %d", i, end, beg)
		}
		prevEnd = end
	}
	if prevEnd != l.NumRequests() {
		t.Fatalf("slices do not cover all %d requests, covered %d", l.NumRequests(), prevEnd)
	}
}

func TestLoaderLoadDatasetLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on mismatched lengths")
		}
	}()
	NewLoader().LoadDataset([]int32{1, 2}, []int32{0})
}

func TestLoaderOutOfRangeTimestamp(t *testing.T) {
	l := NewLoader()
	l.LoadDataset([]int32{1}, []int32{0})
	l.SliceByTime(0, 2, 1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range timestamp")
		}
	}()
	l.GetISliceByTimestamp(5)
}
