package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ProtectedPrefix is the path under which writes require a token.
const ProtectedPrefix = "/api/dogs/dogs"

var protectedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Middleware rejects unauthenticated writes under ProtectedPrefix with 401.
// Reads always pass. An empty secret turns the check off.
func Middleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.Named("auth")
	if jwtSecret == "" {
		logger.Warn("JWT secret is empty, write endpoints are unauthenticated")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if jwtSecret == "" || !isProtectedRequest(r) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, err := extractTokenFromHeader(r)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			claims, err := validateToken(tokenString, jwtSecret)
			if err != nil {
				logger.Debug("rejected token", zap.Error(err), zap.String("path", r.URL.Path))
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractTokenFromHeader(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("invalid authorization format: missing Bearer prefix")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return "", errors.New("invalid authorization format: empty token")
	}

	return tokenString, nil
}

func isProtectedRequest(r *http.Request) bool {
	if !protectedMethods[r.Method] {
		return false
	}
	path := r.URL.Path
	return path == ProtectedPrefix || strings.HasPrefix(path, ProtectedPrefix+"/")
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="dogs"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
