package httpx

import "net/http"

// RequireRole rejects requests whose authenticated role is not in the
// allowed set. Must run after AuthnMiddleware.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromCtx(r.Context())
			if _, ok := want[role]; !ok {
				WriteError(w, http.StatusForbidden, "forbidden",
					"insufficient role for this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
