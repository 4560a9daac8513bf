package worklist

// Worklist is a queue of pending elements. GetNext treats it as a FIFO queue,
// Pop as a LIFO stack.
type Worklist[T any] struct {
	list []T
}

// Start worklist execution with a preloaded queue and an iteration
// function. The iteration function exposes the next element and a function with
// which to add more elements to the worklist.
func StartV[T any](start []T, do func(next T, add func(el T))) {
	W := Empty[T]()
	for _, e := range start {
		W.Add(e)
	}

	W.Process(do)
}

func Empty[T any]() Worklist[T] {
	return Worklist[T]{}
}

func (w *Worklist[T]) GetNext() (ret T) {
	if len(w.list) == 0 {
		return
	}
	next := w.list[0]
	w.list = w.list[1:]
	return next
}

// Pop removes the most recently added element.
func (w *Worklist[T]) Pop() (ret T) {
	if len(w.list) == 0 {
		return
	}
	last := len(w.list) - 1
	ret = w.list[last]
	var zero T
	w.list[last] = zero
	w.list = w.list[:last]
	return
}

func (w *Worklist[T]) IsEmpty() bool {
	return len(w.list) == 0
}

func (w *Worklist[T]) Process(
	do func(
		next T,
		add func(element T))) {
	for !w.IsEmpty() {
		do(w.GetNext(), w.Add)
	}
}

func (w *Worklist[T]) Add(el T) {
	w.list = append(w.list, el)
}
