// Package middleware общие HTTP middleware: аутентификация и метрики.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
)

const (
	// UserIDHeader заголовок с ID аутентифицированного пользователя.
	// Проставляется API-гейтвеем после проверки токена.
	UserIDHeader = "X-User-ID"

	msgUnauthorized = "требуется аутентификация"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет наличие X-User-ID и кладёт его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID извлекает ID пользователя из контекста запроса
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
