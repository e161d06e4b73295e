package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaClock_UnattachedRunsDirectly(t *testing.T) {
	clock := NewTeaClock()
	done := make(chan struct{})

	clock.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
}

func TestTeaClock_Stop(t *testing.T) {
	clock := NewTeaClock()
	fired := make(chan struct{}, 1)

	timer := clock.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	require.True(t, timer.Stop())

	assert.Empty(t, fired)
	assert.WithinDuration(t, time.Now(), clock.Now(), time.Second)
}
