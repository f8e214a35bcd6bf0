package renderer

// handleTable maps buffer handles to backend resources. Handles are allocated from a counter
// that never repeats within a table, so a released handle can never alias a newer buffer.
type handleTable[T any] struct {
	next    BufferHandle
	entries map[BufferHandle]T
}

func newHandleTable[T any]() *handleTable[T] {
	return &handleTable[T]{entries: make(map[BufferHandle]T)}
}

// reserve allocates a fresh handle mapped to the zero resource.
func (t *handleTable[T]) reserve() BufferHandle {
	t.next++
	var zero T
	t.entries[t.next] = zero
	return t.next
}

// insert maps an externally named handle, such as a GL buffer name.
func (t *handleTable[T]) insert(h BufferHandle, v T) {
	t.entries[h] = v
}

func (t *handleTable[T]) get(h BufferHandle) (T, bool) {
	v, ok := t.entries[h]
	return v, ok
}

func (t *handleTable[T]) set(h BufferHandle, v T) bool {
	if _, ok := t.entries[h]; !ok {
		return false
	}
	t.entries[h] = v
	return true
}

// remove deletes h and returns its resource.
func (t *handleTable[T]) remove(h BufferHandle) (T, bool) {
	v, ok := t.entries[h]
	if ok {
		delete(t.entries, h)
	}
	return v, ok
}

// drain empties the table, calling fn for every resource.
func (t *handleTable[T]) drain(fn func(BufferHandle, T)) {
	for h, v := range t.entries {
		fn(h, v)
	}
	clear(t.entries)
}

func (t *handleTable[T]) len() int {
	return len(t.entries)
}
