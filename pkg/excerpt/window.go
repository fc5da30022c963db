package excerpt

// Default context window sizes, in characters. Existing excerpt snapshots
// depend on these exact numbers.
const (
	DefaultPointBefore = 15
	DefaultPointAfter  = 6
	DefaultRangeBefore = 10
	DefaultRangeAfter  = 6
)

// Window sets how much surrounding text accompanies a highlight.
type Window struct {
	// PointBefore and PointAfter surround an exact-point highlight.
	PointBefore int
	PointAfter  int

	// RangeBefore and RangeAfter surround a range highlight.
	RangeBefore int
	RangeAfter  int
}

// DefaultWindow returns the standard 15/6 point and 10/6 range windows.
func DefaultWindow() Window {
	return Window{
		PointBefore: DefaultPointBefore,
		PointAfter:  DefaultPointAfter,
		RangeBefore: DefaultRangeBefore,
		RangeAfter:  DefaultRangeAfter,
	}
}
