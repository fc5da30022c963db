package source

import "slices"

// positionSet is a sorted set of positions.
type positionSet struct {
	items []Position
}

// insert adds p, reporting whether it was not already present.
func (s *positionSet) insert(p Position) bool {
	idx, found := slices.BinarySearchFunc(s.items, p, Position.Compare)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, idx, p)
	return true
}

func (s *positionSet) contains(p Position) bool {
	_, found := slices.BinarySearchFunc(s.items, p, Position.Compare)
	return found
}

// predecessor returns the greatest element strictly less than p.
func (s *positionSet) predecessor(p Position) (Position, bool) {
	idx, _ := slices.BinarySearchFunc(s.items, p, Position.Compare)
	if idx == 0 {
		return Position{}, false
	}
	return s.items[idx-1], true
}

func (s *positionSet) snapshot() []Position {
	return slices.Clone(s.items)
}

func (s *positionSet) reset() {
	s.items = nil
}

// Registry tracks positions reported for one document.
//
// The seen set holds every checkpoint and every range end and answers
// nearest-preceding queries. The exact-error and range-end sets record which
// positions have been the subject of a diagnostic. All three only grow until
// the document is restarted.
type Registry struct {
	seen        positionSet
	exactErrors positionSet
	rangeEnds   positionSet
}

// Record checkpoints a 1-based position reported by an upstream parser.
func (r *Registry) Record(line, column int) {
	r.seen.insert(FromOneBased(line, column))
}

// NearestPreceding returns the greatest seen position strictly less than p,
// or the document origin when there is none.
func (r *Registry) NearestPreceding(p Position) Position {
	if prev, ok := r.seen.predecessor(p); ok {
		return prev
	}
	return Position{}
}

// AddExactError records p as the subject of an exact-point diagnostic.
func (r *Registry) AddExactError(p Position) {
	r.exactErrors.insert(p)
}

// AddRangeEnd records p as the end of a range diagnostic. The end is also
// added to the seen set, so later ranges start after it.
func (r *Registry) AddRangeEnd(p Position) {
	r.seen.insert(p)
	r.rangeEnds.insert(p)
}

// IsExactError reports whether p was the subject of an exact-point diagnostic.
func (r *Registry) IsExactError(p Position) bool {
	return r.exactErrors.contains(p)
}

// IsRangeEnd reports whether p ended a range diagnostic.
func (r *Registry) IsRangeEnd(p Position) bool {
	return r.rangeEnds.contains(p)
}

// Seen returns the seen positions in ascending order.
func (r *Registry) Seen() []Position {
	return r.seen.snapshot()
}

// ExactErrors returns the exact-error positions in ascending order.
func (r *Registry) ExactErrors() []Position {
	return r.exactErrors.snapshot()
}

// RangeEnds returns the range-end positions in ascending order.
func (r *Registry) RangeEnds() []Position {
	return r.rangeEnds.snapshot()
}

// Reset clears all three sets.
func (r *Registry) Reset() {
	r.seen.reset()
	r.exactErrors.reset()
	r.rangeEnds.reset()
}
