// Package create реализует HTTP-обработчик для добавления гостей в список.
//
// Handler принимает JSON-запрос с данными гостя, валидирует их, извлекает uid
// пользователя из контекста, вызывает бизнес-логику создания записи и возвращает
// сохраненную запись в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/guestlist-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/guestlist-backend/internal/http/response"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/sl"
	"github.com/magabrotheeeer/guestlist-backend/internal/models"
	"github.com/magabrotheeeer/guestlist-backend/internal/storage/repository"
)

// Handler управляет HTTP-запросами на добавление гостей.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания записи,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания гостей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания гостя.
type Service interface {
	Create(ctx context.Context, addedBy *string, req models.CreateGuestRequest) (*models.Guest, error)
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
// @Summary Добавить гостя
// @Description Создает новую запись гостя. Возвращает сохраненную запись с присвоенным id.
// @Tags Guests
// @Accept  json
// @Produce  json
// @Param request body models.CreateGuestRequest true "Данные нового гостя"
// @Success 200 {object} map[string]any "Успешное создание записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании записи"
// @Router /guests [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.guest.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	var addedBy *string
	if uid, ok := r.Context().Value(middlewarectx.UserUID).(string); ok && uid != "" {
		addedBy = &uid
	}

	guest, err := h.service.Create(r.Context(), addedBy, req)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Error("email already in use", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("email already in use"))
			return
		}
		log.Error("failed to create guest", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create guest"))
		return
	}

	log.Info("success to create guest", slog.String("id", guest.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"guest": guest,
	}))
}
