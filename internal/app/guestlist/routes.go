package guestlist

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/guestlist-backend/internal/config"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/guest/create"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/guest/health"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/guest/list"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/guest/remove"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/guest/rsvp"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/guest/search"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/guest/update"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/user/login"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/handlers/user/register"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/guestlist-backend/internal/services/auth"
	guestservice "github.com/magabrotheeeer/guestlist-backend/internal/services/guest"
)

// RegisterRoutes настраивает все маршруты приложения. Поиск гостей и RSVP
// доступны без аутентификации, но ограничены рейт-лимитером; остальные
// операции со списком гостей требуют токен, если requires_auth включен.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	jwtMaker jwt.Maker, guests *guestservice.GuestService, auth *authservice.AuthService) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", register.New(logger, auth).ServeHTTP)
		r.Post("/users/login", login.New(logger, auth).ServeHTTP)

		// Публичные маршруты: рейт-лимит вместо токена.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/guests/search", search.New(logger, guests).ServeHTTP)
			r.Put("/guests/{id}/rsvp", rsvp.New(logger, guests).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(jwtMaker, cfg.RequiresAuth, logger))
			r.Get("/guests", list.New(logger, guests).ServeHTTP)
			r.Post("/guests", create.New(logger, guests).ServeHTTP)
			r.Put("/guests/{id}", update.New(logger, guests).ServeHTTP)
			r.Delete("/guests/{id}", remove.New(logger, guests).ServeHTTP)
			r.Get("/users/me", me.New(logger, auth).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
