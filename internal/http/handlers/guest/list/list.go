// Package list реализует HTTP-обработчик для получения полного гостевого списка.
//
// Handler вызывает бизнес-логику чтения списка и возвращает гостей,
// отсортированных по фамилии, в JSON-формате. Маршрут доступен только
// аутентифицированным пользователям.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/guestlist-backend/internal/http/response"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/sl"
	"github.com/magabrotheeeer/guestlist-backend/internal/models"
)

// Handler обрабатывает запросы на получение гостевого списка.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения списка.
type Service interface {
	List(ctx context.Context) ([]*models.Guest, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить гостевой список
// @Description Возвращает всех гостей, отсортированных по фамилии по возрастанию.
// @Tags Guests
// @Produce  json
// @Success 200 {object} map[string]any "Список гостей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /guests [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.guest.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	guests, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list guests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list guests"))
		return
	}

	log.Info("success to list guests", slog.Int("count", len(guests)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"guests": guests,
	}))
}
