package trace

import "fmt"

// OutOfRangeError reports an index or timestamp lookup outside a
// Loader's declared interval. It is always delivered by panicking with
// a value of this type, never returned — a correctly operating caller
// never triggers it, since these are programmer errors rather than
// recoverable conditions.
type OutOfRangeError struct {
	Op        string
	Value     int
	Low, High int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %d out of range [%d, %d]", e.Op, e.Value, e.Low, e.High)
}
