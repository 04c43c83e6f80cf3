package tickloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRunsAndWaits(t *testing.T) {
	loop := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	ran := false
	require.NoError(t, loop.Do(ctx, func() { ran = true }))
	assert.True(t, ran)
}

func TestDoSerializesConcurrentCallers(t *testing.T) {
	loop := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	// a plain int is safe only if every increment runs on the loop
	counter := 0
	done := make(chan struct{})
	const workers = 50
	for i := 0; i < workers; i++ {
		go func() {
			_ = loop.Do(ctx, func() { counter++ })
			done <- struct{}{}
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}

	var final int
	require.NoError(t, loop.Do(ctx, func() { final = counter }))
	assert.Equal(t, workers, final)
}

func TestDoCancelledContext(t *testing.T) {
	loop := New() // no Run goroutine: submission blocks

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := loop.Do(ctx, func() { t.Fatal("must not run") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitDoesNotWait(t *testing.T) {
	loop := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	ran := make(chan struct{})
	require.NoError(t, loop.Submit(ctx, func() { close(ran) }))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("submitted task never ran")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	loop := New()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(stopped)
	}()

	require.NoError(t, loop.Do(ctx, func() {}))
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}
