package middlewares

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"secondbrain/internal/utils"
)

// AuthMiddleware verifies the session token (Authorization header or jwt
// cookie) and places the user id into the request context. Requests without
// a valid token get a 401.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jwtKey := []byte(os.Getenv("JWT_SECRET"))
		if len(jwtKey) == 0 {
			log.Error().Msg("JWT_SECRET is not set in environment. Authentication will fail.")
			utils.SendJSONError(w, "Server configuration error", http.StatusInternalServerError)
			return
		}

		tokenString := r.Header.Get("Authorization")
		if tokenString != "" {
			if !strings.HasPrefix(tokenString, "Bearer ") {
				utils.SendJSONError(w, "Invalid token format", http.StatusUnauthorized)
				return
			}
			tokenString = tokenString[len("Bearer "):]
		} else if cookie, err := r.Cookie("jwt"); err == nil {
			tokenString = cookie.Value
		}

		if tokenString == "" {
			utils.SendJSONError(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return jwtKey, nil
		})

		if err != nil || !token.Valid {
			utils.SendJSONError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDContextKey, claims.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
