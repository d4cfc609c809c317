package line

// Event indicates the accumulation state after consuming one byte.
type Event int

const (
	// Continue means more bytes are expected for the current line.
	Continue Event = iota
	// Ready means a terminator arrived and a complete line is available.
	Ready
	// Overflow means the buffer filled up before a terminator and the
	// partial line was discarded.
	Overflow
)

// DefaultCapacity is the buffer capacity used when none is specified.
const DefaultCapacity = 128

const (
	byteBS  = 0x08
	byteDEL = 0x7f
)

// Result is the outcome of one Push.
type Result struct {
	Event Event
	// Line holds the completed line (terminator excluded) when
	// Event is Ready, and is empty otherwise.
	Line string
}

// Buffer accumulates received bytes into lines with a fixed capacity.
type Buffer struct {
	storage  []byte
	length   int
	dropping bool
}

// NewBuffer creates a Buffer with the given capacity.
// Non-positive capacity selects DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{storage: make([]byte, capacity)}
}

// Len gets the number of accumulated bytes.
func (b *Buffer) Len() int {
	return b.length
}

// Cap gets the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.storage)
}

// Reset discards any partially accumulated line.
func (b *Buffer) Reset() {
	b.length, b.dropping = 0, false
}

// Push consumes one received byte.
//
// A terminator (LF or CR) completes the line. Backspace/DEL removes the
// last accumulated byte. Other control bytes are ignored and do not
// count toward the length. A printable byte arriving with one slot left
// discards the whole partial line and reports Overflow exactly once:
// the rest of the over-long line, up to and including its terminator,
// is swallowed so a truncated command can never be executed.
func (b *Buffer) Push(c byte) (r Result) {
	if c == '\n' || c == '\r' {
		if b.dropping {
			b.dropping = false
			return
		}
		r.Event, r.Line = Ready, string(b.storage[:b.length])
		b.length = 0
		return
	}
	if b.dropping {
		return
	}
	switch {
	case c == byteBS || c == byteDEL:
		if b.length > 0 {
			b.length--
		}
	case c >= 0x20 && c < byteDEL:
		if b.length >= len(b.storage)-1 {
			b.length, b.dropping = 0, true
			r.Event = Overflow
			return
		}
		b.storage[b.length] = c
		b.length++
	}
	return
}
