package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("redis down")

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newBreaker(t *testing.T) (*Breaker, *clock, *[]State) {
	t.Helper()
	var changes []State
	b := New("redis", Config{
		FailureThreshold: 3,
		OpenTimeout:      10 * time.Second,
		OnStateChange:    func(_ string, _, to State) { changes = append(changes, to) },
	})
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b.now = c.now
	return b, c, &changes
}

func fail() error {
	return errDown
}

func succeed() error {
	return nil
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b, _, changes := newBreaker(t)

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, b.Execute(fail), errDown)
	}
	// 成功会清零连续失败计数
	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateClosed, b.State())

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Execute(fail), errDown)
	}
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called, "打开状态下不执行请求")
	assert.Equal(t, []State{StateOpen}, *changes)
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	b, c, changes := newBreaker(t)
	for i := 0; i < 3; i++ {
		_ = b.Execute(fail)
	}

	c.advance(10 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, *changes)
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, c, _ := newBreaker(t)
	for i := 0; i < 3; i++ {
		_ = b.Execute(fail)
	}
	c.advance(11 * time.Second)

	assert.ErrorIs(t, b.Execute(fail), errDown)
	assert.Equal(t, StateOpen, b.State())

	c.advance(5 * time.Second)
	assert.ErrorIs(t, b.Execute(succeed), ErrOpen)
}

func TestBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, c, _ := newBreaker(t)
	for i := 0; i < 3; i++ {
		_ = b.Execute(fail)
	}
	c.advance(10 * time.Second)

	// 第一个探测请求尚未完成时,其余请求直接拒绝
	err := b.Execute(func() error {
		assert.ErrorIs(t, b.Execute(succeed), ErrOpen)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, b.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half_open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}
