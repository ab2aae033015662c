package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type principalKey struct{}

// Authenticate extracts the bearer token from r and verifies it.
// An absent header is ErrMissingToken; a header that is not a bearer
// credential is ErrMalformedToken. It does not check that the user still exists.
func (t *TokenManager) Authenticate(r *http.Request) (Principal, error) {
	header := r.Header.Get("Authorization")
	if strings.TrimSpace(header) == "" {
		return Principal{}, ErrMissingToken
	}
	token, ok := BearerToken(header)
	if !ok {
		return Principal{}, fmt.Errorf("%w: authorization header is not a bearer credential", ErrMalformedToken)
	}
	return t.Parse(token)
}

// BearerToken returns the credential of an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by WithPrincipal, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
