package health_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/healthdemo/pkg/health"
)

func TestHealthBuilders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, health.StatusUp, health.Up().Status)
	assert.Equal(t, health.StatusDown, health.Down().Status)
	assert.Equal(t, health.StatusOutOfService, health.OutOfService().Status)
	assert.Equal(t, health.StatusUnknown, health.Unknown().Status)
	assert.Nil(t, health.Up().Details)
}

func TestHealthWithDetail(t *testing.T) {
	t.Parallel()

	base := health.Down().WithDetail("code", 42)
	extended := base.WithDetail("extra", "value")

	assert.Equal(t, map[string]any{"code": 42}, base.Details, "original must not be mutated")
	assert.Equal(t, map[string]any{"code": 42, "extra": "value"}, extended.Details)
}

func TestHealthWithError(t *testing.T) {
	t.Parallel()

	t.Run("adds error detail", func(t *testing.T) {
		t.Parallel()

		h := health.Down().WithError(errors.New("connection refused"))
		assert.Equal(t, "connection refused", h.Details["error"])
	})

	t.Run("nil error is a no-op", func(t *testing.T) {
		t.Parallel()

		h := health.Up().WithError(nil)
		assert.Nil(t, h.Details)
	})
}

func TestFromCheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	up := health.FromCheck(func(context.Context) error { return nil })
	assert.Equal(t, health.StatusUp, up.Health(ctx).Status)

	down := health.FromCheck(func(context.Context) error { return errors.New("boom") })
	h := down.Health(ctx)
	assert.Equal(t, health.StatusDown, h.Status)
	assert.Equal(t, "boom", h.Details["error"])
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		statuses []health.Status
		want     health.Status
	}{
		{"empty is up", nil, health.StatusUp},
		{"all up", []health.Status{health.StatusUp, health.StatusUp}, health.StatusUp},
		{"down wins over up", []health.Status{health.StatusUp, health.StatusDown}, health.StatusDown},
		{"out of service wins over up", []health.Status{health.StatusUp, health.StatusOutOfService}, health.StatusOutOfService},
		{"down wins over out of service", []health.Status{health.StatusOutOfService, health.StatusDown}, health.StatusDown},
		{"up wins over unknown", []health.Status{health.StatusUnknown, health.StatusUp}, health.StatusUp},
		{"custom status ranks last", []health.Status{"WARMING", health.StatusUnknown}, health.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, health.Aggregate(tt.statuses...))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusOK, health.HTTPStatus(health.StatusUp))
	assert.Equal(t, http.StatusOK, health.HTTPStatus(health.StatusUnknown))
	assert.Equal(t, http.StatusServiceUnavailable, health.HTTPStatus(health.StatusDown))
	assert.Equal(t, http.StatusServiceUnavailable, health.HTTPStatus(health.StatusOutOfService))
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	up := health.IndicatorFunc(func(context.Context) health.Health { return health.Up() })

	t.Run("register and get", func(t *testing.T) {
		t.Parallel()

		reg := health.NewRegistry()
		require.NoError(t, reg.Register("db", up))
		require.NoError(t, reg.Register("cache", up))

		_, ok := reg.Get("db")
		assert.True(t, ok)
		assert.Equal(t, []string{"cache", "db"}, reg.Names())
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		t.Parallel()

		reg := health.NewRegistry()
		require.NoError(t, reg.Register("db", up))
		require.ErrorIs(t, reg.Register("db", up), health.ErrDuplicateName)
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		t.Parallel()

		reg := health.NewRegistry()
		require.ErrorIs(t, reg.Register("", up), health.ErrInvalidName)
		require.ErrorIs(t, reg.Register("a/b", up), health.ErrInvalidName)
		require.ErrorIs(t, reg.Register(health.IncludeAll, up), health.ErrInvalidName)
		require.ErrorIs(t, reg.Register("nil", nil), health.ErrInvalidName)
	})

	t.Run("unregister", func(t *testing.T) {
		t.Parallel()

		reg := health.NewRegistry()
		require.NoError(t, reg.Register("db", up))
		assert.True(t, reg.Unregister("db"))
		assert.False(t, reg.Unregister("db"))
		assert.Empty(t, reg.Names())
	})
}

func TestParseShowDetails(t *testing.T) {
	t.Parallel()

	v, err := health.ParseShowDetails("always")
	require.NoError(t, err)
	assert.Equal(t, health.ShowAlways, v)

	v, err = health.ParseShowDetails("never")
	require.NoError(t, err)
	assert.Equal(t, health.ShowNever, v)

	_, err = health.ParseShowDetails("sometimes")
	require.ErrorIs(t, err, health.ErrInvalidShowDetails)
}
