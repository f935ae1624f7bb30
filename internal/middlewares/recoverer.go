package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
)

// Recoverer turns a panic into a 500 JSON response.
func Recoverer(errs *response.ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
				errs.Write(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
