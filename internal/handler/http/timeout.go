package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gowhere/internal/handler/http/respond"
)

// MainTimeout is the summary sent when a request outlives its deadline.
const MainTimeout = "Gateway Timeout. Request took too long to complete."

// Timeout returns middleware that bounds each request by duration.
// The request context is canceled at the deadline so that store calls abort,
// and a 504 envelope is written unless the handler has already responded.
// A non-positive duration disables the bound.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if duration <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			panicked := make(chan any, 1)
			tw := &timeoutWriter{ResponseWriter: w, header: make(http.Header)}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.flush()
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if tw.wroteHeader {
					tw.flush()
					return
				}
				respond.JSON(w, http.StatusGatewayTimeout, respond.Failure{
					Main:    MainTimeout,
					Details: "Request exceeded " + duration.String() + ".",
				})
			}
		})
	}
}

// timeoutWriter buffers the handler's response so that it is either sent
// whole or replaced by the timeout envelope.
type timeoutWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	header      http.Header
	body        []byte
	status      int
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.status = code
}

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.status = http.StatusOK
	}
	tw.body = append(tw.body, p...)
	return len(p), nil
}

// flush copies the buffered response to the underlying writer. Callers hold mu.
func (tw *timeoutWriter) flush() {
	dst := tw.ResponseWriter.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
	if !tw.wroteHeader {
		tw.status = http.StatusOK
	}
	tw.ResponseWriter.WriteHeader(tw.status)
	_, _ = tw.ResponseWriter.Write(tw.body)
}
