package engine_test

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	_ "github.com/devtalks/devlink.go/pkg/cmds/all"
	"github.com/devtalks/devlink.go/pkg/engine"
	"github.com/devtalks/devlink.go/pkg/periph/sim"
)

// linkBuffer collects engine output; reads report EOF immediately so
// tests can drive the engine synchronously via ProcessByte and
// DispatchLine.
type linkBuffer struct {
	out strings.Builder
}

func (l *linkBuffer) Read(p []byte) (int, error) { return 0, io.EOF }

func (l *linkBuffer) Write(p []byte) (int, error) { return l.out.WriteString(string(p)) }

func (l *linkBuffer) Take() string {
	s := l.out.String()
	l.out.Reset()
	return s
}

func newTestEngine(opts engine.Options) (*engine.Engine, *sim.Bank, *linkBuffer) {
	link := &linkBuffer{}
	bank := sim.NewBank()
	return engine.New(link, bank, opts), bank, link
}

func TestDispatchGpioOn(t *testing.T) {
	eng, _, link := newTestEngine(engine.Options{})

	eng.DispatchLine("gpio.on 12")
	require.Equal(t, "OK [GPIO12 = HIGH]\r\n", link.Take())

	high, err := eng.Hooks().ReadPeripheralFlag(12)
	require.NoError(t, err)
	require.True(t, high)
	require.Equal(t, engine.Record{Accepted: 1}, eng.Hooks().Counters())
}

func TestDispatchUnsupportedPin(t *testing.T) {
	eng, _, link := newTestEngine(engine.Options{})

	eng.DispatchLine("gpio.on 99")
	require.Equal(t, "ERROR: unsupported pin\r\n", link.Take())
	require.Equal(t, engine.Record{Rejected: 1}, eng.Hooks().Counters())
	for _, id := range eng.State().Pins() {
		require.False(t, eng.State().Flag(id), "state must be unchanged on rejection")
	}
}

func TestDispatchErrors(t *testing.T) {
	testCases := []struct {
		name   string
		in     string
		expect string
	}{
		{"unknown command", "bogus", "ERROR: unknown command\r\n"},
		{"arity too few", "gpio.on", "ERROR: usage: gpio.on <pin>\r\n"},
		{"arity too many", "gpio.on 12 13", "ERROR: usage: gpio.on <pin>\r\n"},
		{"invalid pin content", "gpio.on twelve", "ERROR: invalid pin number\r\n"},
		{"negative pin", "gpio.on -1", "ERROR: invalid pin number\r\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			eng, _, link := newTestEngine(engine.Options{})
			eng.DispatchLine(tc.in)
			require.Equal(t, tc.expect, link.Take())
			require.Equal(t, engine.Record{Rejected: 1}, eng.Hooks().Counters())
		})
	}
}

func TestDispatchPeripheralFault(t *testing.T) {
	eng, bank, link := newTestEngine(engine.Options{})
	bank.SetFault(12, true)

	eng.DispatchLine("gpio.on 12")
	require.Equal(t, "ERROR: peripheral fault\r\n", link.Take())
	require.False(t, eng.State().Flag(12))
}

func TestDispatchBlankLineNotCounted(t *testing.T) {
	eng, _, link := newTestEngine(engine.Options{})
	eng.DispatchLine("")
	eng.DispatchLine("  \t ")
	require.Equal(t, "", link.Take())
	require.Equal(t, engine.Record{}, eng.Hooks().Counters())
}

func TestCounterMonotonicity(t *testing.T) {
	eng, _, _ := newTestEngine(engine.Options{})
	lines := []string{
		"gpio.on 12", "bogus", "gpio.off 12", "gpio.on 99", "help", "stream.start", "stream.stop",
	}
	for n, s := range lines {
		eng.DispatchLine(s)
		rec := eng.Hooks().Counters()
		require.Equal(t, uint64(n+1), rec.Accepted+rec.Rejected,
			"exactly one counter increments per dispatched line")
	}
}

func TestStreamModeIdempotent(t *testing.T) {
	eng, _, link := newTestEngine(engine.Options{})

	eng.DispatchLine("stream.start")
	require.Equal(t, engine.ModeStreaming, eng.Hooks().Mode())
	out := link.Take()
	require.Contains(t, out, "[Switching to streaming mode...]\r\n")
	require.Contains(t, out, "OK [streaming]\r\n")

	eng.DispatchLine("stream.start")
	require.Equal(t, engine.ModeStreaming, eng.Hooks().Mode())
	require.Contains(t, link.Take(), "OK [streaming]\r\n")

	eng.DispatchLine("stream.stop")
	eng.DispatchLine("stream.stop")
	require.Equal(t, engine.ModeInteractive, eng.Hooks().Mode())
}

func TestScenarioSequence(t *testing.T) {
	eng, _, _ := newTestEngine(engine.Options{})
	for _, s := range []string{"gpio.on 12", "stream.start", "stream.stop", "gpio.off 12"} {
		eng.DispatchLine(s)
	}
	high, err := eng.Hooks().ReadPeripheralFlag(12)
	require.NoError(t, err)
	require.False(t, high)
	require.Equal(t, engine.ModeInteractive, eng.Hooks().Mode())
	require.Equal(t, uint64(4), eng.Hooks().Counters().Accepted)
}

func TestHooksSetModeEscape(t *testing.T) {
	eng, _, _ := newTestEngine(engine.Options{})
	eng.DispatchLine("stream.start")
	require.Equal(t, engine.ModeStreaming, eng.Hooks().Mode())

	// debugger escape from a saturated streaming channel
	eng.Hooks().SetMode(engine.ModeInteractive)
	require.Equal(t, engine.ModeInteractive, eng.Hooks().Mode())
}

func TestProcessByteOverflowCounted(t *testing.T) {
	eng, _, _ := newTestEngine(engine.Options{BufferSize: 8})
	for i := 0; i < 20; i++ {
		eng.ProcessByte('a')
	}
	require.Equal(t, engine.Record{Overflow: 1}, eng.Hooks().Counters())
}

func TestEchoAndPrompt(t *testing.T) {
	eng, _, link := newTestEngine(engine.Options{Echo: true})

	eng.ProcessByte('h')
	eng.ProcessByte('i')
	eng.ProcessByte(0x08)
	eng.ProcessByte(0x08)
	eng.ProcessByte(0x08) // nothing left to erase, no echo
	require.Equal(t, "hi\x08 \x08\x08 \x08", link.Take())

	eng.DispatchLine("gpio.on 12")
	require.Equal(t, "OK [GPIO12 = HIGH]\r\n> ", link.Take())

	// no echo or prompt while streaming
	eng.DispatchLine("stream.start")
	link.Take()
	eng.ProcessByte('x')
	require.Equal(t, "", link.Take())
}

func TestHelpListsCommands(t *testing.T) {
	eng, _, link := newTestEngine(engine.Options{})
	eng.DispatchLine("help")
	out := link.Take()
	require.Contains(t, out, "Commands:")
	for _, name := range []string{"gpio.init", "gpio.on", "gpio.off", "gpio.read", "stream.start", "stream.stop", "help"} {
		require.Contains(t, out, name)
	}
	require.Contains(t, out, "OK\r\n")
}

func TestEngineRunOverLink(t *testing.T) {
	engRead, opWrite := io.Pipe()
	opRead, engWrite := io.Pipe()
	rw := struct {
		io.Reader
		io.Writer
	}{engRead, engWrite}

	eng := engine.New(rw, sim.NewBank(), engine.Options{
		LoopInterval: time.Millisecond,
		EmitInterval: 5 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	in := bufio.NewReader(opRead)
	readLine := func() string {
		s, err := in.ReadString('\n')
		require.NoError(t, err)
		return strings.TrimRight(s, "\r\n")
	}

	_, err := opWrite.Write([]byte("gpio.on 12\n"))
	require.NoError(t, err)
	require.Equal(t, "OK [GPIO12 = HIGH]", readLine())

	_, err = opWrite.Write([]byte("stream.start\n"))
	require.NoError(t, err)
	require.Equal(t, "[Switching to streaming mode...]", readLine())
	require.Equal(t, "OK [streaming]", readLine())

	// telemetry frames flow until stream.stop is dispatched
	require.Regexp(t, `^\[gpio2=0 gpio4=0 gpio12=1 gpio13=0 counter=1 `, readLine())

	_, err = opWrite.Write([]byte("stream.stop\n"))
	require.NoError(t, err)
	for {
		s := readLine()
		if strings.HasPrefix(s, "[Switching to CLI mode...]") {
			break
		}
		require.Regexp(t, `^\[gpio`, s, "only telemetry may interleave")
	}
	require.Equal(t, "OK [interactive]", readLine())

	cancel()
	opWrite.Close()
	require.Equal(t, context.Canceled, <-done)
}
