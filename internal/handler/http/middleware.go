package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"gowhere/internal/handler/http/pathutil"
	"gowhere/internal/handler/http/requestid"
	"gowhere/internal/handler/http/respond"
	"gowhere/internal/handler/http/responsewriter"
	"gowhere/internal/observability/logging"
)

// Chain applies middleware so that the first one listed is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging returns middleware that logs every request once it completes and
// puts a request-scoped logger into the context for handlers.
// 5xx responses log at error level and 4xx at warn.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			r = r.WithContext(logging.WithLogger(r.Context(), logger))
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			level := slog.LevelInfo
			switch {
			case wrapped.Status() >= 500:
				level = slog.LevelError
			case wrapped.Status() >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", trace.SpanFromContext(r.Context()).SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("route", pathutil.NormalizePath(r.URL.Path)),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", wrapped.Status()),
				slog.Int("bytes", wrapped.Size()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that turns a panic into a 500 envelope.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
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
				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				if rw, ok := w.(*responsewriter.Recorder); ok && rw.Written() {
					return
				}
				respond.JSON(w, http.StatusInternalServerError, respond.Failure{
					Main:    respond.MainInternal,
					Details: "Unexpected error while handling the request.",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody returns middleware that limits the size of request bodies to prevent DoS attacks.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// client is the token bucket of one remote address.
type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// Throttle limits mutating requests (POST, PUT, PATCH, DELETE) per client
// address with a token bucket. Reads are never throttled.
type Throttle struct {
	clients   sync.Map // map[string]*client
	rps       rate.Limit
	burst     int
	idle      time.Duration
	trusted   []netip.Prefix
	cleanMu   sync.Mutex
	lastClean time.Time
	now       func() time.Time
}

// NewThrottle allows rps mutating requests per second per client with the given burst.
// Forwarding headers are honored only on requests arriving from a trusted proxy.
func NewThrottle(rps float64, burst int, trusted ...netip.Prefix) *Throttle {
	return &Throttle{
		rps:       rate.Limit(rps),
		burst:     burst,
		trusted:   trusted,
		idle:      10 * time.Minute,
		lastClean: time.Now(),
		now:       time.Now,
	}
}

// Middleware answers 429 when the client's bucket is empty.
func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		t.periodicCleanup()
		if !t.allow(extractIP(r, t.trusted)) {
			recordThrottled(r.Method)
			w.Header().Set("Retry-After", "1")
			respond.JSON(w, http.StatusTooManyRequests, respond.Failure{
				Main:    respond.MainThrottled,
				Details: "Write rate limit exceeded.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (t *Throttle) allow(ip string) bool {
	now := t.now()
	val, _ := t.clients.LoadOrStore(ip, &client{limiter: rate.NewLimiter(t.rps, t.burst)})
	c := val.(*client)
	c.lastSeen.Store(now.UnixNano())
	return c.limiter.AllowN(now, 1)
}

// periodicCleanup drops buckets of clients idle for longer than t.idle.
func (t *Throttle) periodicCleanup() {
	t.cleanMu.Lock()
	defer t.cleanMu.Unlock()

	now := t.now()
	if now.Sub(t.lastClean) < t.idle {
		return
	}
	t.lastClean = now
	cutoff := now.Add(-t.idle).UnixNano()
	t.clients.Range(func(key, value any) bool {
		if value.(*client).lastSeen.Load() < cutoff {
			t.clients.Delete(key)
		}
		return true
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// extractIP returns the client address of r. X-Forwarded-For and then
// X-Real-IP are consulted only when the connection comes from a trusted proxy;
// otherwise the peer address is used as is.
func extractIP(r *http.Request, trusted []netip.Prefix) string {
	peer := remoteHost(r.RemoteAddr)
	if !isTrusted(peer, trusted) {
		return peer
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String()
		}
	}
	return peer
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func isTrusted(host string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
