package trace

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Context key types stay unexported so callers cannot reach in directly.
type ctxKey string

const ctxKeyTrace ctxKey = "trace_info"

// Info holds the tracing state of one HTTP request.
// - RequestID: unique per request
// - spanSeq: span sequence within the request, 0 for the inbound span
type Info struct {
	RequestID string
	spanSeq   int64
}

// GenerateID returns a fresh random id for tracing.
func GenerateID() string {
	return uuid.NewString()
}

// WithRequestAndSpan stores the request id and an initial span value
// (normally 0) in a new context.
func WithRequestAndSpan(ctx context.Context, requestID string, initialSpan int64) context.Context {
	info := &Info{RequestID: requestID, spanSeq: initialSpan}
	return context.WithValue(ctx, ctxKeyTrace, info)
}

func infoFromContext(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKeyTrace).(*Info)
	return v
}

// RequestIDFromContext returns the request id stored in the context.
func RequestIDFromContext(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return ""
	}
	return info.RequestID
}

// CurrentSpanID returns the current span sequence as a string without
// incrementing it.
func CurrentSpanID(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return "0"
	}
	val := atomic.LoadInt64(&info.spanSeq)
	if val <= 0 {
		return "0"
	}
	return strconv.FormatInt(val, 10)
}
