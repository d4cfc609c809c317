package line

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type bufferTestSequence struct {
	in    []byte
	final Result
}

type bufferTestSequenceBuilder struct {
	seq []bufferTestSequence
}

func bufferTestSequences() *bufferTestSequenceBuilder {
	return &bufferTestSequenceBuilder{}
}

func (b *bufferTestSequenceBuilder) on(in ...byte) *bufferTestSequenceBuilder {
	b.seq = append(b.seq, bufferTestSequence{in: in})
	return b
}

func (b *bufferTestSequenceBuilder) onStr(s string) *bufferTestSequenceBuilder {
	return b.on([]byte(s)...)
}

func (b *bufferTestSequenceBuilder) line(s string) *bufferTestSequenceBuilder {
	b.seq[len(b.seq)-1].final = Result{Event: Ready, Line: s}
	return b
}

func (b *bufferTestSequenceBuilder) overflow() *bufferTestSequenceBuilder {
	b.seq[len(b.seq)-1].final = Result{Event: Overflow}
	return b
}

func (b *bufferTestSequenceBuilder) build() []bufferTestSequence {
	return b.seq
}

func TestBuffer(t *testing.T) {
	testCases := []struct {
		name string
		cap  int
		seq  []bufferTestSequence
	}{
		{
			name: "simple lines",
			seq: bufferTestSequences().
				onStr("gpio.on 12\n").line("gpio.on 12").
				onStr("help\n").line("help").
				build(),
		},
		{
			name: "crlf yields one line plus a blank",
			seq: bufferTestSequences().
				onStr("help\r").line("help").
				on('\n').line("").
				build(),
		},
		{
			name: "control bytes ignored",
			seq: bufferTestSequences().
				on('h', 0x01, 'i', 0x02, '\n').line("hi").
				build(),
		},
		{
			name: "backspace pops",
			seq: bufferTestSequences().
				on('h', 'x', byteBS, 'i', '\n').line("hi").
				build(),
		},
		{
			name: "backspace on empty is harmless",
			seq: bufferTestSequences().
				on(byteDEL, byteBS, 'o', 'k', '\n').line("ok").
				build(),
		},
		{
			name: "overflow discards partial line",
			cap:  8,
			seq: bufferTestSequences().
				onStr("abcdefgh").overflow().
				onStr("tail").    // swallowed with the over-long line
				onStr("\n").      // terminator of the discarded line
				onStr("xy\n").line("xy").
				build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := NewBuffer(tc.cap)
			for n, s := range tc.seq {
				var r Result
				for _, c := range s.in {
					r = buf.Push(c)
					require.True(t, buf.Len() < buf.Cap(), "seq[%d] length exceeds capacity", n)
				}
				require.Equalf(t, s.final, r, "seq[%d] final mismatch", n)
			}
		})
	}
}

func TestBufferNeverReadyOnLongBurst(t *testing.T) {
	buf := NewBuffer(64)
	var overflows int
	for _, c := range []byte(strings.Repeat("a", 200)) {
		r := buf.Push(c)
		require.NotEqual(t, Ready, r.Event)
		if r.Event == Overflow {
			overflows++
		}
		require.True(t, buf.Len() <= buf.Cap())
	}
	require.Equal(t, 1, overflows)
}

func TestBufferReset(t *testing.T) {
	buf := NewBuffer(16)
	buf.Push('a')
	buf.Push('b')
	require.Equal(t, 2, buf.Len())
	buf.Reset()
	require.Equal(t, 0, buf.Len())
	r := buf.Push('\n')
	require.Equal(t, Result{Event: Ready, Line: ""}, r)
}

func TestBufferDefaultCapacity(t *testing.T) {
	require.Equal(t, DefaultCapacity, NewBuffer(0).Cap())
	require.Equal(t, DefaultCapacity, NewBuffer(-1).Cap())
}
