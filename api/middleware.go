package api

import (
	"log"
	"net/http"
	"strings"
)

// requireBearer guards the protected routes. The status split is
// deliberate: no credential presented at all is 403, a presented but
// invalid or expired credential is 401. No upstream call happens before
// this check passes.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusForbidden, "Not authenticated")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		if _, err := s.tokens.Verify(token); err != nil {
			log.Printf("Auth: rejected token: %v", err)
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next.ServeHTTP(w, r)
	})
}
