package generic

// Void is a zero-size placeholder for map values that only exist for their keys.
type Void = struct{}

type Set[T any] interface {
	Add(item T) bool
	Contains(items ...T) bool
	Count() int
	ToSlice() []T
}

func NewSet[T comparable](items ...T) Set[T] {
	res := make(set[T])
	for _, item := range items {
		res.Add(item)
	}
	return &res
}

type set[T comparable] map[T]Void

func (s *set[T]) Add(item T) bool {
	if _, found := (*s)[item]; found {
		return false
	}
	(*s)[item] = Void{}
	return true
}

func (s *set[T]) Contains(items ...T) bool {
	for _, item := range items {
		if _, found := (*s)[item]; !found {
			return false
		}
	}
	return true
}

func (s *set[T]) Count() int {
	return len(*s)
}

func (s *set[T]) ToSlice() []T {
	items := make([]T, 0, len(*s))
	for item := range *s {
		items = append(items, item)
	}
	return items
}
