package llm

import "context"

type purposeCtxKey struct{}

// UnknownPurpose labels requests made without WithPurpose.
const UnknownPurpose = "unknown"

// WithPurpose tags ctx with the kind of content being requested
// ("problems", "hints", ...). The label ends up on the request event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey{}, purpose)
}

// PurposeFrom returns the purpose attached by WithPurpose, or
// UnknownPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeCtxKey{}).(string); ok && v != "" {
		return v
	}
	return UnknownPurpose
}
