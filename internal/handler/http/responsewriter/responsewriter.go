// Package responsewriter records the status and size of a response so that
// logging, metrics and tracing middleware can report them.
package responsewriter

import (
	"net/http"
)

// Recorder wraps http.ResponseWriter and records what was written.
type Recorder struct {
	http.ResponseWriter
	status  int
	size    int
	written bool
}

// Wrap returns w when it already is a Recorder so that stacked middleware
// share one record; otherwise it wraps w.
func Wrap(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code and forwards it.
func (w *Recorder) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

// Write writes the response body and records the size.
func (w *Recorder) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Flush forwards to the underlying writer when it supports flushing.
func (w *Recorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Status returns the recorded status code, 200 when nothing was written.
func (w *Recorder) Status() int {
	return w.status
}

// Size returns the number of body bytes written.
func (w *Recorder) Size() int {
	return w.size
}

// Written reports whether the header has been sent.
func (w *Recorder) Written() bool {
	return w.written
}

// Unwrap returns the underlying http.ResponseWriter (for http.ResponseController support).
func (w *Recorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
