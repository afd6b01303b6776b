package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"project-management-api/logging"
	"project-management-api/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthUser is the fixed-shape identity record the gate attaches to the
// request context on successful verification.
type AuthUser struct {
	ID        primitive.ObjectID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type contextKey string

const authUserKey contextKey = "authUser"

// AuthUserFromContext returns the identity attached by JWTAuth.
func AuthUserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(AuthUser)
	return user, ok
}

// JWTAuth rejects requests without a bearer token (401) or with a token that
// fails verification (403). Expired tokens are not distinguished from invalid
// ones in the response.
func JWTAuth(jwtService *services.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				writeMessage(w, http.StatusUnauthorized, "No token provided")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := jwtService.ValidateToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Token rejected for request to %s %s: %v", r.Method, r.URL.Path, err)
				writeMessage(w, http.StatusForbidden, "Invalid token")
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_BAD_SUBJECT, Description: Token carries a malformed user ID for request to %s %s", r.Method, r.URL.Path)
				writeMessage(w, http.StatusForbidden, "Invalid token")
				return
			}

			user := AuthUser{ID: userID}
			if claims.IssuedAt != nil {
				user.IssuedAt = claims.IssuedAt.Time
			}
			if claims.ExpiresAt != nil {
				user.ExpiresAt = claims.ExpiresAt.Time
			}

			ctx := context.WithValue(r.Context(), authUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
