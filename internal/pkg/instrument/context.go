package instrument

import "context"

type ctxKey int

const correlationIDKey ctxKey = iota

// SetCorrelationID returns ctx carrying cID. Log records made with the
// returned context get a cID attribute.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, cID)
}

// GetCorrelationID returns the id set by SetCorrelationID, or "".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cID, _ := ctx.Value(correlationIDKey).(string)
	return cID
}
