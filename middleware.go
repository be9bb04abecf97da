package main

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const sessionKey ctxKey = "session"

// sessionMiddleware extracts and validates the Bearer token and injects the
// live session into the request context.
func (a *App) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(authz, "Bearer ")
		sid, err := parseJWT(a.cfg.JWTSecret, raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		sess, ok := a.sessions.get(sid)
		if !ok {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// mustSession returns the session from context. Handlers behind the
// middleware can rely on it being present.
func mustSession(r *http.Request) *session {
	return r.Context().Value(sessionKey).(*session)
}
