// Package remove реализует HTTP-обработчик удаления гостя из списка.
//
// Handler извлекает id из URL-параметров, вызывает бизнес-логику удаления
// и возвращает последнее состояние удаленной записи для подтверждения в UI.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/guestlist-backend/internal/http/response"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/sl"
	"github.com/magabrotheeeer/guestlist-backend/internal/models"
	"github.com/magabrotheeeer/guestlist-backend/internal/storage/repository"
)

// Handler обрабатывает запросы на удаление гостя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления.
type Service interface {
	Remove(ctx context.Context, id string) (*models.Guest, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.guest.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	guest, err := h.service.Remove(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			log.Error("guest not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("guest not found"))
			return
		}
		log.Error("failed to remove guest", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove guest"))
		return
	}

	log.Info("success to remove guest", slog.String("id", guest.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"guest": guest,
	}))
}
