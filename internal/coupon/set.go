package coupon

// mapCodeSet implements CodeSet using a map for O(1) lookups.
// It is not safe for concurrent use; each issuance builds its own.
type mapCodeSet struct {
	codes map[string]struct{}
}

// NewCodeSet creates a map-based set seeded with values.
func NewCodeSet(capacity int, values ...string) CodeSet {
	s := &mapCodeSet{
		codes: make(map[string]struct{}, max(capacity, len(values))),
	}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Contains checks if a value exists in the set.
func (s *mapCodeSet) Contains(code string) bool {
	_, exists := s.codes[code]
	return exists
}

// Size returns the number of values in the set.
func (s *mapCodeSet) Size() int {
	return len(s.codes)
}

// Add adds a value to the set.
func (s *mapCodeSet) Add(code string) {
	s.codes[code] = struct{}{}
}
