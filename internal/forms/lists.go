package forms

// List is an ordered, positionally addressed collection of form rows.
// Mutations addressed at an index outside the current range are silent
// no-ops, so a stale index from a concurrent removal never panics.
type List[T any] struct {
	Items []T
}

// Add appends item to the end of the list.
func (l *List[T]) Add(item T) {
	l.Items = append(l.Items, item)
}

// Update applies mutate to the item at index.
func (l *List[T]) Update(index int, mutate func(*T)) {
	if index < 0 || index >= len(l.Items) {
		return
	}
	mutate(&l.Items[index])
}

// Remove deletes the item at index, shifting later items down to close the
// gap.
func (l *List[T]) Remove(index int) {
	if index < 0 || index >= len(l.Items) {
		return
	}
	l.Items = append(l.Items[:index], l.Items[index+1:]...)
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.Items)
}

// At returns the item at index and whether the index was in range.
func (l *List[T]) At(index int) (T, bool) {
	if index < 0 || index >= len(l.Items) {
		var zero T
		return zero, false
	}
	return l.Items[index], true
}
