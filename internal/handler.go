package internal

// Handler declares routes on a router.
//
// Example:
//
//	type EmulateHandler struct {
//	    dependency *dependency.State
//	}
//
//	func (h *EmulateHandler) Routes(r internal.Router) {
//	    r.GET("/emulate-dependency-down", h.dependencyDown)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Maintenance(on *atomic.Bool) internal.Middleware {
//	    return func(next internal.HandlerFunc) internal.HandlerFunc {
//	        return func(c internal.Context) error {
//	            if on.Load() {
//	                return internal.ErrServiceUnavailable("maintenance")
//	            }
//	            return next(c)
//	        }
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
