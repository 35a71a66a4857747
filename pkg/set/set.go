package set

type Set[T comparable] map[T]struct{}

func NewSet[T comparable]() Set[T] {
	return make(Set[T])
}

// Of builds a set from the given items, duplicates collapse.
func Of[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

func (s Set[T]) Add(item T) {
	s[item] = struct{}{}
}

func (s Set[T]) Contains(item T) bool {
	_, exists := s[item]
	return exists
}

func (s Set[T]) Remove(element T) {
	delete(s, element)
}

func (s Set[T]) Clear() {
	clear(s)
}

func (s Set[T]) Size() int {
	return len(s)
}

// IntersectionSize counts the items present in both sets without
// allocating the intersection.
func (s Set[T]) IntersectionSize(other Set[T]) int {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	n := 0
	for item := range small {
		if large.Contains(item) {
			n++
		}
	}
	return n
}

// UnionSize counts the distinct items across both sets.
func (s Set[T]) UnionSize(other Set[T]) int {
	return len(s) + len(other) - s.IntersectionSize(other)
}

// Jaccard returns |s ∩ other| / max(1, |s ∪ other|).
func (s Set[T]) Jaccard(other Set[T]) float64 {
	union := s.UnionSize(other)
	if union < 1 {
		union = 1
	}
	return float64(s.IntersectionSize(other)) / float64(union)
}
