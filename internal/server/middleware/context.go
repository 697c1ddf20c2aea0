package middleware

import "context"

type contextKey struct{ name string }

var (
	userIDKey = contextKey{"user_id"}
	orgIDKey  = contextKey{"org_id"}
)

// WithIdentity returns a context with the authenticated user id and the
// caller's organization scope set. orgID may be nil when the access token
// carries no organization claim; handlers read these via GetUserID and GetOrgID.
func WithIdentity(ctx context.Context, userID int64, orgID *int64) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, orgIDKey, orgID)
	return ctx
}

// GetUserID returns the user id from context and true if set; otherwise 0, false.
func GetUserID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(userIDKey).(int64)
	return v, ok
}

// GetOrgID returns the organization scope from context and true if the request
// was authenticated. The returned pointer is nil when the token carried no
// organization claim.
func GetOrgID(ctx context.Context) (*int64, bool) {
	v, ok := ctx.Value(orgIDKey).(*int64)
	return v, ok
}
