// Package rsvp реализует публичный HTTP-обработчик самостоятельного ответа гостя.
//
// Гость идентифицирует себя только знанием id своей записи (capability URL),
// поэтому маршрут не требует аутентификации. Несуществующий id считается
// ошибкой клиента и возвращает HTTP 400, в отличие от административного
// обновления, где это HTTP 404.
package rsvp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/guestlist-backend/internal/http/response"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/sl"
	"github.com/magabrotheeeer/guestlist-backend/internal/models"
	"github.com/magabrotheeeer/guestlist-backend/internal/storage/repository"
)

// Handler обрабатывает самостоятельные ответы гостей на приглашение.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики RSVP.
type Service interface {
	RSVP(ctx context.Context, id string, req models.RSVPRequest) (*models.Guest, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.guest.rsvp"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RSVPRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id := chi.URLParam(r, "id")

	guest, err := h.service.RSVP(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			log.Error("no guest found", slog.String("id", id))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no guest found"))
			return
		}
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Error("email already in use", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("email already in use"))
			return
		}
		log.Error("failed to apply rsvp", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not apply rsvp"))
		return
	}

	log.Info("success to apply rsvp", slog.String("id", guest.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"guest": guest,
	}))
}
