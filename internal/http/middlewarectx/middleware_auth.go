// Package middlewarectx содержит HTTP middleware для проверки токена аутентификации.
//
// AuthMiddleware читает токен из заголовка X-Auth-Token и проверяет его подпись
// и срок действия через jwt.Maker. При выключенном requiresAuth запрос проходит
// без идентификации. Отсутствие токена — HTTP 401, некорректный токен — HTTP 400.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/guestlist-backend/internal/http/response"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/sl"
)

// AuthHeader имя заголовка, в котором клиент передает токен.
const AuthHeader = "X-Auth-Token"

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для uid пользователя в контексте
	UserUID Key = "user_uid"
	// User — ключ для имени пользователя в контексте
	User Key = "username"
)

// AuthMiddleware возвращает HTTP middleware, который проверяет токен в заголовке X-Auth-Token.
//
// Если requiresAuth выключен, запрос передается дальше без идентификации.
// Если токен валиден, uid и имя пользователя добавляются в контекст запроса.
func AuthMiddleware(maker jwt.Maker, requiresAuth bool, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			if !requiresAuth {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := r.Header.Get(AuthHeader)
			if tokenStr == "" {
				log.Error("missing auth token header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, claims.UserUID)
			ctx = context.WithValue(ctx, User, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
