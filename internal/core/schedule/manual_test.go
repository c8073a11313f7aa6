package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualFiresInDueOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.Schedule(20*time.Millisecond, func() { order = append(order, "slow") })
	m.Schedule(10*time.Millisecond, func() { order = append(order, "fast") })

	m.Advance(40 * time.Millisecond)

	assert.Equal(t, []string{"fast", "slow", "fast", "fast", "slow", "fast"}, order)
	assert.Equal(t, 40*time.Millisecond, m.Now())
}

func TestManualCancelFromCallback(t *testing.T) {
	m := NewManual()
	calls := 0
	var h Handle
	h = m.Schedule(10*time.Millisecond, func() {
		calls++
		if calls == 2 {
			m.Cancel(h)
		}
	})

	m.Advance(100 * time.Millisecond)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, m.Pending())
}

func TestManualPauseResume(t *testing.T) {
	m := NewManual()
	calls := 0
	h := m.Schedule(10*time.Millisecond, func() { calls++ })

	m.Advance(30 * time.Millisecond)
	assert.Equal(t, 3, calls)

	m.Pause(h)
	m.Advance(50 * time.Millisecond)
	assert.Equal(t, 3, calls)

	m.Resume(h)
	m.Advance(5 * time.Millisecond)
	assert.Equal(t, 3, calls, "resume waits a full interval")
	m.Advance(5 * time.Millisecond)
	assert.Equal(t, 4, calls)
}

func TestManualRejectsNonPositiveInterval(t *testing.T) {
	assert.PanicsWithValue(t, ErrInvalidInterval, func() {
		NewManual().Schedule(0, func() {})
	})
}
