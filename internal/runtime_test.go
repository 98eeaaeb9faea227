package internal_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/healthdemo/internal"
	"github.com/dmitrymomot/healthdemo/pkg/availability"
)

func TestRunGracefulShutdown(t *testing.T) {
	t.Parallel()

	avail := availability.New()
	app := internal.New(internal.WithAvailability(avail))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	var hookOrder []string

	done := make(chan error, 1)
	go func() {
		done <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.ShutdownTimeout(5*time.Second),
			internal.DrainDelay(10*time.Millisecond),
			internal.StartupHook(func(context.Context) error {
				close(started)
				return nil
			}),
			internal.ShutdownHook(func(context.Context) error {
				hookOrder = append(hookOrder, "first:"+string(avail.Readiness()))
				return nil
			}),
			internal.ShutdownHook(func(context.Context) error {
				hookOrder = append(hookOrder, "second")
				return nil
			}),
		)
	}()

	<-started
	assert.Equal(t, availability.AcceptingTraffic, avail.Readiness())
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.Equal(t, availability.RefusingTraffic, avail.Readiness())
	e, ok := avail.LastChange(availability.KindReadiness)
	require.True(t, ok)
	assert.Equal(t, internal.ShutdownSource, e.Source)
	assert.Equal(t, []string{"first:REFUSING_TRAFFIC", "second"}, hookOrder)
}

func TestRunShutdownHookErrorsAreJoined(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")
	errB := errors.New("b failed")

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- internal.New().Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.StartupHook(func(context.Context) error { close(started); return nil }),
			internal.ShutdownHook(func(context.Context) error { return errA }),
			internal.ShutdownHook(func(context.Context) error { return errB }),
		)
	}()

	<-started
	cancel()

	err := <-done
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
}

func TestRunStartupHookFailure(t *testing.T) {
	t.Parallel()

	errBoot := errors.New("boot failed")
	err := internal.New().Run("127.0.0.1:0",
		internal.StartupHook(func(context.Context) error { return errBoot }),
	)
	require.ErrorIs(t, err, errBoot)
}

func TestRunListenFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = internal.New().Run(ln.Addr().String())
	require.Error(t, err)
}
