// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
)

// UnauthorizedMessage is the body text for every rejected credential. It
// never says which part was wrong.
const UnauthorizedMessage = "Unauthorized."

// SecretMatches reports whether the presented credential equals the
// configured secret. An empty presented value never matches.
func SecretMatches(presented, secret string) bool {
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1
}

// RequireSecret rejects requests whose Authorization header is not exactly
// the shared admin secret. The header carries the secret itself, with no
// scheme prefix, on every request.
func RequireSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SecretMatches(r.Header.Get("Authorization"), secret) {
				slog.Warn("api request rejected", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": UnauthorizedMessage})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
