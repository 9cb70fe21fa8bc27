// Package guard gates role-scoped content behind authentication and role
// match. The decision rules live here and nowhere else.
package guard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/inqgamerz48/university-management-v2.0/internal/auth"
	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
	"github.com/inqgamerz48/university-management-v2.0/internal/role"
)

type Decision int

const (
	// Allow renders the protected content.
	Allow Decision = iota
	// Wait renders a neutral waiting state: the session check has not
	// resolved yet, and redirecting now would flash the landing page at a
	// user who is about to be authenticated.
	Wait
	// RedirectLanding sends an unauthenticated visitor to the public
	// landing route.
	RedirectLanding
	// RedirectUnauthorized sends an authenticated but role-mismatched user
	// to the unauthorized route.
	RedirectUnauthorized
)

const (
	LandingPath      = "/"
	UnauthorizedPath = "/unauthorized"
)

// Evaluate computes authorization for a screen requiring the given role.
func Evaluate(profile *backend.Profile, loading bool, required role.Role) Decision {
	if loading {
		return Wait
	}
	if profile == nil {
		return RedirectLanding
	}
	if !profile.Role.Satisfies(required) {
		return RedirectUnauthorized
	}
	return Allow
}

type profileKey struct{}

// ProfileFromContext returns the profile injected by RequireRole, or nil on
// an unguarded route.
func ProfileFromContext(ctx context.Context) *backend.Profile {
	profile, _ := ctx.Value(profileKey{}).(*backend.Profile)
	return profile
}

// RequireRole builds middleware enforcing the guard contract over HTTP:
// redirects for unauthorized callers, a neutral waiting payload while the
// session check is unresolved, and the profile in the request context once
// allowed. snapshots resolves the caller's auth state from the request.
func RequireRole(required role.Role, snapshots func(*http.Request) auth.Snapshot) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snapshot := snapshots(r)
			switch Evaluate(snapshot.Profile, snapshot.Loading, required) {
			case Wait:
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusOK)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "loading"})
			case RedirectLanding:
				http.Redirect(w, r, LandingPath, http.StatusFound)
			case RedirectUnauthorized:
				http.Redirect(w, r, UnauthorizedPath, http.StatusFound)
			case Allow:
				ctx := context.WithValue(r.Context(), profileKey{}, snapshot.Profile)
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}
