package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CollectsErrors(t *testing.T) {
	g := NewManager(4)
	errBoom := errors.New("boom")

	var ran atomic.Int32
	for range 3 {
		g.Go(context.Background(), func(context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	g.Go(context.Background(), func(context.Context) error { return errBoom })

	err := g.Wait()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.EqualValues(t, 3, ran.Load())
}

func TestManager_DropsWhenFull(t *testing.T) {
	g := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	g.Go(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	var ran atomic.Bool
	g.Go(context.Background(), func(context.Context) error {
		ran.Store(true)
		return nil
	})

	close(release)
	require.NoError(t, g.Wait())
	assert.False(t, ran.Load())
}

func TestManager_ClosedAfterWait(t *testing.T) {
	g := NewManager(0)
	require.NoError(t, g.Wait())

	var ran atomic.Bool
	g.Go(context.Background(), func(context.Context) error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, g.Wait())
	assert.False(t, ran.Load())
}

func TestManager_RecoversPanic(t *testing.T) {
	g := NewManager(1)
	g.Go(context.Background(), func(context.Context) error { panic("nope") })
	assert.NoError(t, g.Wait())

	var nilManager *Manager
	nilManager.Go(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, nilManager.Wait())
}

func TestManager_CanceledContext(t *testing.T) {
	g := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	g.Go(ctx, func(context.Context) error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, g.Wait())
	assert.False(t, ran.Load())
}
