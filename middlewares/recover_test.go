package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/healthdemo/internal"
	"github.com/dmitrymomot/healthdemo/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("recovers from panic and returns PanicError", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.Recover()(func(internal.Context) error {
			panic("test panic")
		})

		err := handler(ctx)
		require.Error(t, err)
		require.True(t, middlewares.IsPanicError(err))
		require.Equal(t, "panic: test panic", err.Error())

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "test panic", pe.Value)
		require.NotEmpty(t, pe.Stack)
		require.LessOrEqual(t, len(pe.Stack), middlewares.DefaultStackSize)
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		sentinel := errors.New("handler error")
		handler := middlewares.Recover()(func(internal.Context) error { return sentinel })

		require.ErrorIs(t, handler(ctx), sentinel)
	})

	t.Run("disable stack", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())(func(internal.Context) error {
			panic("test panic")
		})

		pe, ok := middlewares.AsPanicError(handler(ctx))
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("custom stack size", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.Recover(middlewares.WithRecoverStackSize(64))(func(internal.Context) error {
			panic("test panic")
		})

		pe, ok := middlewares.AsPanicError(handler(ctx))
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 64)
	})

	t.Run("error panic value is unwrapped", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("nil map write")
		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.Recover()(func(internal.Context) error { panic(cause) })

		require.ErrorIs(t, handler(ctx), cause)
	})
}

func TestRecoverThroughApp(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(middlewares.Recover()),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			if middlewares.IsPanicError(err) {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal"})
			}
			return err
		}),
		internal.WithHandlers(panicHandler{}),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"internal"}`, rec.Body.String())
}

type panicHandler struct{}

func (panicHandler) Routes(r internal.Router) {
	r.GET("/panic", func(internal.Context) error { panic("boom") })
}

func TestPanicErrorHelpers(t *testing.T) {
	t.Parallel()

	require.False(t, middlewares.IsPanicError(http.ErrNoCookie))
	_, ok := middlewares.AsPanicError(http.ErrNoCookie)
	require.False(t, ok)
	require.NoError(t, (&middlewares.PanicError{Value: "x"}).Unwrap())
}
