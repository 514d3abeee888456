package trace

import "testing"

func TestSliceAtNegativeIndex(t *testing.T) {
	s := Slice{requests: []Request{{ContentID: 1, Timestamp: 0}, {ContentID: 2, Timestamp: 1}}}
	if got := s.At(-1); got.ContentID != 2 {
		t.Fatalf("At(-1) = %v, want ContentID 2", got)
	}
	if got := s.At(0); got.ContentID != 1 {
		t.Fatalf("At(0) = %v, want ContentID 1", got)
	}
}

func TestSliceSubToEnd(t *testing.T) {
	s := Slice{requests: []Request{{ContentID: 1}, {ContentID: 2}, {ContentID: 3}}}
	sub := s.Sub(1, -1)
	if sub.Size() != 2 {
		t.Fatalf("Sub(1, -1).Size() = %d, want 2", sub.Size())
	}
	if sub.At(0).ContentID != 2 || sub.At(1).ContentID != 3 {
		t.Fatalf("Sub(1, -1) = %v, want [2 3]", sub.All())
	}
}

func TestSliceOutOfRangePanics(t *testing.T) {
	s := Slice{requests: []Request{{ContentID: 1}}}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range index")
		}
	}()
	s.At(5)
}

func TestSliceEmpty(t *testing.T) {
	var s Slice
	if !s.Empty() {
		t.Fatalf("zero-value Slice should be Empty")
	}
	if s.Size() != 0 {
		t.Fatalf("zero-value Slice.Size() = %d, want 0", s.Size())
	}
}
