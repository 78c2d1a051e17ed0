// Package search реализует публичный HTTP-обработчик поиска гостей.
//
// Гость ищет собственное приглашение по фамилии и, при желании, имени.
// Фамилия сверяется точно, имя — по вхождению без учета регистра, включая
// альтернативные имена. Маршрут намеренно не требует аутентификации.
package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/guestlist-backend/internal/http/response"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/sl"
	"github.com/magabrotheeeer/guestlist-backend/internal/models"
)

// Handler обрабатывает запросы публичного поиска гостей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики поиска.
type Service interface {
	Search(ctx context.Context, req models.SearchGuestRequest) ([]*models.Guest, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Найти гостей
// @Description Ищет гостей по точной фамилии и необязательному имени (без учета регистра, по подстроке, включая альтернативные имена). Пустое имя совпадает с любым.
// @Tags Guests
// @Accept  json
// @Produce  json
// @Param request body models.SearchGuestRequest true "Параметры поиска"
// @Success 200 {object} map[string]any "Найденные гости (возможно, пустой список)"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Router /guests/search [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.guest.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SearchGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	guests, err := h.service.Search(r.Context(), req)
	if err != nil {
		log.Error("failed to search guests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search guests"))
		return
	}

	log.Info("success to search guests",
		slog.String("last_name", req.LastName), slog.Int("count", len(guests)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"guests": guests,
	}))
}
