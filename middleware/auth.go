package middleware

import (
    "context"
    "encoding/json"
    "log"
    "net/http"
    "strings"

    "loanms-go/models"
    "loanms-go/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

func JWTAuth(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        authHeader := r.Header.Get("Authorization")
        if authHeader == "" {
            writeAuthError(w, http.StatusUnauthorized, "Authorization header required")
            return
        }

        bearerToken := strings.Split(authHeader, " ")
        if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
            writeAuthError(w, http.StatusUnauthorized, "Invalid authorization header format")
            return
        }

        claims, err := utils.ValidateToken(bearerToken[1])
        if err != nil {
            log.Printf("Token validation failed for %s: %v", r.URL.Path, err)
            writeAuthError(w, http.StatusUnauthorized, "Invalid token")
            return
        }

        ctx := context.WithValue(r.Context(), UserContextKey, claims)
        next.ServeHTTP(w, r.WithContext(ctx))
    })
}

// RequireRole gates a subrouter to the given roles. Officer routes pass
// both officer roles; admin and customer routes pass exactly one.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            claims := GetUserFromContext(r)
            if claims == nil {
                writeAuthError(w, http.StatusUnauthorized, "Authentication required")
                return
            }

            for _, role := range roles {
                if claims.Role == role {
                    next.ServeHTTP(w, r)
                    return
                }
            }

            log.Printf("User %d (%s) denied access to %s", claims.UserID, claims.Role, r.URL.Path)
            writeAuthError(w, http.StatusForbidden, "Access denied for this role")
        })
    }
}

func GetUserFromContext(r *http.Request) *utils.Claims {
    if claims, ok := r.Context().Value(UserContextKey).(*utils.Claims); ok {
        return claims
    }
    return nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(map[string]string{"message": message})
}
