package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"haulageBackoffice/repository"
)

// Middleware returns HTTP middleware that extracts and validates a Bearer
// JWT from the Authorization header and injects the Principal into the
// request context. Paths listed in allowUnauthenticated bypass
// authentication (e.g. health checks).
func Middleware(secret string, allowUnauthenticated ...string) func(http.Handler) http.Handler {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, p := range allowUnauthenticated {
		allow[strings.TrimSpace(p)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allow[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			p, err := ParseFromRequest(r, secret)
			if err != nil {
				http.Error(w, "auth error: "+err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// ErrForbidden distinguishes permission failures from missing credentials.
var ErrForbidden = errors.New("forbidden")

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return nil, errors.New("missing principal")
	}
	return p, nil
}

// RequireDispatcherOrAdmin ensures the caller is a dispatcher or admin.
func RequireDispatcherOrAdmin(ctx context.Context) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if p.Kind != "dispatcher" && p.Kind != "admin" {
		return nil, ErrForbidden
	}
	return p, nil
}

// RequireAdmin ensures the caller is an admin principal AND that the
// underlying dispatcher record carries the admin role. This prevents
// spoofing by a non-admin token.
func RequireAdmin(ctx context.Context, dispatchers *repository.DispatcherRepository) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if p.Kind != "admin" {
		return nil, ErrForbidden
	}
	if dispatchers == nil {
		return nil, errors.New("dispatchers repository not configured")
	}
	d, err := dispatchers.GetByUsername(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if d == nil || strings.ToLower(strings.TrimSpace(d.Role)) != "admin" {
		return nil, ErrForbidden
	}
	return p, nil
}
