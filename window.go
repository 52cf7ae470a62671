package goblz77

// window is a bounded FIFO of bytes. Appending past capacity evicts the oldest bytes first.
// The live bytes are always contiguous in buf[head:tail]; when the tail reaches the end of buf
// the live bytes are copied back to the front.
type window struct {
	buf      []byte
	head     int
	tail     int
	capacity int
}

const maxWindowSlack = 1 << 20

func newWindow(capacity int) *window {
	slack := capacity
	if slack > maxWindowSlack {
		slack = maxWindowSlack
	} else if slack < 64 {
		slack = 64
	}
	return &window{
		buf:      make([]byte, capacity+slack),
		capacity: capacity,
	}
}

// Bytes returns the live contents, oldest first. The slice is only valid until the next mutation.
func (w *window) Bytes() []byte {
	return w.buf[w.head:w.tail]
}

func (w *window) Len() int {
	return w.tail - w.head
}

func (w *window) Cap() int {
	return w.capacity
}

func (w *window) Full() bool {
	return w.Len() == w.capacity
}

// Append adds p at the end, evicting from the front so that at most Cap bytes remain.
func (w *window) Append(p []byte) {
	if w.capacity == 0 {
		return
	}
	if len(p) >= w.capacity {
		w.head = 0
		w.tail = copy(w.buf, p[len(p)-w.capacity:])
		return
	}
	keep := w.Len()
	if keep > w.capacity-len(p) {
		keep = w.capacity - len(p)
	}
	w.head = w.tail - keep
	if w.tail+len(p) > len(w.buf) {
		copy(w.buf, w.buf[w.head:w.tail])
		w.head = 0
		w.tail = keep
	}
	w.tail += copy(w.buf[w.tail:], p)
}

func (w *window) AppendByte(b byte) {
	if w.capacity == 0 {
		return
	}
	if w.Full() {
		w.head++
	}
	if w.tail == len(w.buf) {
		w.tail = copy(w.buf, w.buf[w.head:w.tail])
		w.head = 0
	}
	w.buf[w.tail] = b
	w.tail++
}

// Discard drops the n oldest bytes.
func (w *window) Discard(n int) {
	if n > w.Len() {
		n = w.Len()
	}
	w.head += n
	if w.head == w.tail {
		w.head = 0
		w.tail = 0
	}
}

// Free is the number of bytes that can be appended before anything is evicted.
func (w *window) Free() int {
	return w.capacity - w.Len()
}
