package eventlog

import "context"

// Origin describes who asked for a timer operation.
type Origin struct {
	Source    Source
	RequestID string
}

type originKey struct{}

// WithOrigin returns a context carrying the origin of an operation.
func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey{}, o)
}

// OriginFrom returns the origin stored in ctx. Without one, the control
// surface is assumed.
func OriginFrom(ctx context.Context) Origin {
	if ctx == nil {
		return Origin{}
	}
	o, _ := ctx.Value(originKey{}).(Origin)
	return o
}
