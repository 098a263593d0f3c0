package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC)

func TestOnlyLastTouchFires(t *testing.T) {
	d := New(DefaultInterval)
	assert.Equal(t, Idle, d.State())

	first := d.Touch(epoch)
	second := d.Touch(epoch.Add(100 * time.Millisecond))
	assert.Equal(t, Pending, d.State())
	assert.Equal(t, epoch.Add(600*time.Millisecond), d.Deadline())
	assert.Equal(t, second.Deadline, d.Deadline())

	assert.False(t, d.Fire(first))
	assert.Equal(t, Pending, d.State())

	assert.True(t, d.Fire(second))
	assert.Equal(t, Idle, d.State())

	// already fired
	assert.False(t, d.Fire(second))
}

func TestCancel(t *testing.T) {
	d := New(time.Second)
	tok := d.Touch(epoch)
	d.Cancel()
	assert.Equal(t, Idle, d.State())
	assert.False(t, d.Fire(tok))
	assert.True(t, d.Deadline().IsZero())
}

func TestDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(0).Interval())
	assert.Equal(t, time.Second, New(time.Second).Interval())
	assert.Equal(t, "pending", Pending.String())
}
