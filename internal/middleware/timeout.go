package middleware

import (
	"net/http"
	"time"
)

// Timeout buffers the response; routes that stream or upgrade use
// StreamingTimeout or no timeout instead.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := `{"message":"Request timed out"}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, message)
	}
}
