package middleware

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// OperatorContextKey holds the acting operator's name.
	OperatorContextKey contextKey = "operator"

	// OperatorHeader is the trusted header carrying the operator identity.
	// There is no authentication: the system trusts whatever name the
	// operator typed into the sidebar field.
	OperatorHeader = "X-Operator"

	defaultOperator = "System"
)

// Operator extracts the operator identity from the request header and adds
// it to the request context, defaulting to "System" when absent.
func Operator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operator := strings.TrimSpace(r.Header.Get(OperatorHeader))
		if operator == "" {
			operator = defaultOperator
		}
		ctx := context.WithValue(r.Context(), OperatorContextKey, operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OperatorFromContext returns the acting operator's name.
func OperatorFromContext(ctx context.Context) string {
	if operator, ok := ctx.Value(OperatorContextKey).(string); ok && operator != "" {
		return operator
	}
	return defaultOperator
}
