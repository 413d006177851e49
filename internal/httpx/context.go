package httpx

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// RequestIDFrom returns the id stored by RequestIDMiddleware, or "".
func RequestIDFrom(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// Logger scopes log to the request, tagging entries with its id.
func Logger(r *http.Request, log logrus.FieldLogger) logrus.FieldLogger {
	if id := RequestIDFrom(r); id != "" {
		return log.WithField("request_id", id)
	}
	return log
}
