package utils

// Array3 is dense storage for a 3D grid with the last index varying
// fastest.
type Array3[T any] struct {
	Shape [3]int
	Data  []T
}

func NewArray3[T any](shape [3]int) *Array3[T] {
	return &Array3[T]{
		Shape: shape,
		Data:  make([]T, shape[0]*shape[1]*shape[2]),
	}
}

func (a *Array3[T]) Index(i, j, k int) int {
	return k + a.Shape[2]*(j+a.Shape[1]*i)
}

func (a *Array3[T]) At(i, j, k int) T {
	return a.Data[a.Index(i, j, k)]
}

func (a *Array3[T]) Set(i, j, k int, val T) {
	a.Data[a.Index(i, j, k)] = val
}

func (a *Array3[T]) AtIdx(idx [3]int) T {
	return a.Data[a.Index(idx[0], idx[1], idx[2])]
}

func (a *Array3[T]) SetIdx(idx [3]int, val T) {
	a.Data[a.Index(idx[0], idx[1], idx[2])] = val
}

func (a *Array3[T]) Len() int { return len(a.Data) }
