package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEmitterModeGating(t *testing.T) {
	state := NewState([]int{12})
	em := NewEmitter(state, 100*time.Millisecond)

	_, ok := em.MaybeEmit(time.Now())
	require.False(t, ok, "no emission while interactive")

	state.SetMode(ModeStreaming)
	frame, ok := em.MaybeEmit(time.Now())
	require.True(t, ok)
	require.Regexp(t, `^\[gpio12=0 counter=1 uptime_ms=\d+ accepted=0 rejected=0 overflow=0\]$`, frame)
}

func TestEmitterRateLimit(t *testing.T) {
	state := NewState([]int{12})
	state.SetMode(ModeStreaming)
	em := NewEmitter(state, 100*time.Millisecond)

	now := time.Now()
	_, ok := em.MaybeEmit(now)
	require.True(t, ok)
	_, ok = em.MaybeEmit(now.Add(10 * time.Millisecond))
	require.False(t, ok)
	_, ok = em.MaybeEmit(now.Add(99 * time.Millisecond))
	require.False(t, ok)
	_, ok = em.MaybeEmit(now.Add(100 * time.Millisecond))
	require.True(t, ok)
}

func TestEmitterFrameFields(t *testing.T) {
	state := NewState([]int{2, 12})
	state.SetMode(ModeStreaming)
	state.SetFlag(12, true)
	state.RecordAccepted()
	state.RecordAccepted()
	state.RecordRejected()
	state.RecordOverflow()
	em := NewEmitter(state, time.Millisecond)

	frame, ok := em.MaybeEmit(time.Now())
	require.True(t, ok)
	require.Regexp(t,
		`^\[gpio2=0 gpio12=1 counter=1 uptime_ms=\d+ accepted=2 rejected=1 overflow=1\]$`,
		frame)
}

func TestEmitterUptimeMonotone(t *testing.T) {
	state := NewState([]int{12})
	state.SetMode(ModeStreaming)
	em := NewEmitter(state, 100*time.Millisecond)

	re := regexp.MustCompile(`uptime_ms=(\d+)`)
	now := time.Now()
	var prevUptime, frames int64
	for i := 0; i < 5; i++ {
		frame, ok := em.MaybeEmit(now.Add(time.Duration(i) * 100 * time.Millisecond))
		require.True(t, ok)
		m := re.FindStringSubmatch(frame)
		require.NotNil(t, m)
		uptime, err := strconv.ParseInt(m[1], 10, 64)
		require.NoError(t, err)
		require.True(t, uptime >= prevUptime, "uptime must be non-decreasing")
		prevUptime = uptime
		frames++
		require.Contains(t, frame, fmt.Sprintf("counter=%d", frames))
	}
}

func TestEmitterDefaultInterval(t *testing.T) {
	em := NewEmitter(NewState(nil), 0)
	require.Equal(t, DefaultEmitInterval, em.Interval)
}
