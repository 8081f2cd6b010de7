package forms

// YearCounter tracks how many forecast years a section currently exposes for
// yearly-value entry. Each section carries its own counter with its own
// bounds; counters never move outside them.
type YearCounter struct {
	Count int
	Min   int
	Max   int // 0 means unbounded
}

// Increment raises the year count by one and reports whether it moved.
func (c *YearCounter) Increment() bool {
	if c.Max > 0 && c.Count >= c.Max {
		return false
	}
	c.Count++
	return true
}

// Decrement lowers the year count by one and reports whether it moved.
func (c *YearCounter) Decrement() bool {
	if c.Count <= c.Min {
		return false
	}
	c.Count--
	return true
}

// resizeSeries returns series adjusted to exactly n entries. Growth appends
// zero-valued entries; shrinking truncates from the end, discarding the
// dropped values.
func resizeSeries(series []string, n int) []string {
	if n < 0 {
		n = 0
	}
	for len(series) < n {
		series = append(series, "0")
	}
	return series[:n]
}

// resizeAll applies resizeSeries to every tracked series in a section. Each
// list item exposes its series through the accessor so new rows added after
// a count change still join at the current length.
func resizeAll[T any](l *List[T], n int, series func(*T) *[]string) {
	for i := range l.Items {
		s := series(&l.Items[i])
		*s = resizeSeries(*s, n)
	}
}
