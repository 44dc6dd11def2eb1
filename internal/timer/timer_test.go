package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleClampsToTotal(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tm := New(clock)
	done := tm.Start(1000 * time.Millisecond)

	clock.Advance(400 * time.Millisecond)
	total, elapsed := tm.Sample()
	assert.Equal(t, 1000*time.Millisecond, total)
	assert.Equal(t, 400*time.Millisecond, elapsed)

	clock.Advance(1000 * time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	_, elapsed = tm.Sample()
	assert.Equal(t, 1000*time.Millisecond, elapsed)
}

func TestSkipFiresImmediatelyAndOnlyOnce(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tm := New(clock)
	done := tm.Start(time.Hour)

	tm.Skip()
	select {
	case <-done:
	default:
		t.Fatal("skip did not fire completion")
	}

	// second skip must not panic (closing a closed channel would panic)
	require.NotPanics(t, tm.Skip)
}

func TestCancelNeverFires(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tm := New(clock)
	done := tm.Start(10 * time.Millisecond)
	tm.Cancel()
	clock.Advance(time.Hour)

	select {
	case <-done:
		t.Fatal("cancelled timer fired")
	case <-time.After(50 * time.Millisecond):
	}
}
