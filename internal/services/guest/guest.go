// Package services содержит бизнес-логику для управления гостевым списком и кешированием.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/guestlist-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/sl"
	"github.com/magabrotheeeer/guestlist-backend/internal/models"
)

// listCacheKey ключ, под которым кешируется полный гостевой список.
const listCacheKey = "guests:all"

// GuestRepository определяет методы для работы с гостями в хранилище.
type GuestRepository interface {
	// CreateGuest добавляет нового гостя и возвращает сохраненную запись.
	CreateGuest(ctx context.Context, guest models.Guest) (*models.Guest, error)
	// ReadGuest возвращает гостя по id.
	ReadGuest(ctx context.Context, id string) (*models.Guest, error)
	// ListGuests возвращает всех гостей, отсортированных по фамилии.
	ListGuests(ctx context.Context) ([]*models.Guest, error)
	// SearchGuests ищет гостей по фамилии и необязательному имени.
	SearchGuests(ctx context.Context, lastName, firstName string) ([]*models.Guest, error)
	// UpdateGuest применяет частичное обновление и возвращает новую версию записи.
	UpdateGuest(ctx context.Context, id string, patch models.UpdateGuestRequest) (*models.Guest, error)
	// RemoveGuest удаляет гостя и возвращает удаленную запись.
	RemoveGuest(ctx context.Context, id string) (*models.Guest, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует события в очередь уведомлений.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// GuestService реализует бизнес-логику гостевого списка, включая кеширование
// и публикацию событий RSVP.
type GuestService struct {
	repo   GuestRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// NewGuestService создает новый экземпляр GuestService.
// events может быть nil, тогда события RSVP не публикуются.
func NewGuestService(repo GuestRepository, cache Cache, events EventPublisher, log *slog.Logger) *GuestService {
	return &GuestService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// Create создает нового гостя. addedBy — uid пользователя из контекста запроса,
// nil при выключенной аутентификации.
func (s *GuestService) Create(ctx context.Context, addedBy *string, req models.CreateGuestRequest) (*models.Guest, error) {
	now := time.Now().UTC()
	otherNames := req.OtherNames
	if otherNames == nil {
		otherNames = []string{}
	}
	guest := models.Guest{
		ID:           uuid.New().String(),
		LastName:     req.LastName,
		FirstName:    req.FirstName,
		OtherNames:   otherNames,
		Attending:    false,
		MaxPlusses:   req.MaxPlusses,
		Plusses:      0,
		AddedBy:      addedBy,
		DateCreated:  now,
		DateModified: now,
	}

	stored, err := s.repo.CreateGuest(ctx, guest)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new guest", slog.String("id", stored.ID))

	s.invalidateList()
	return stored, nil
}

// List возвращает всех гостей по фамилии, используя кеш или хранилище.
func (s *GuestService) List(ctx context.Context) ([]*models.Guest, error) {
	var cached []*models.Guest
	found, err := s.cache.Get(listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read guest list from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	guests, err := s.repo.ListGuests(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(listCacheKey, guests, time.Hour); err != nil {
		s.log.Warn("failed to cache guest list", sl.Err(err))
	}
	return guests, nil
}

// Search ищет гостей по фамилии и необязательному имени. Кеш не используется:
// это публичная конечная точка с произвольными параметрами.
func (s *GuestService) Search(ctx context.Context, req models.SearchGuestRequest) ([]*models.Guest, error) {
	return s.repo.SearchGuests(ctx, req.LastName, req.FirstName)
}

// Update применяет административное частичное обновление к записи гостя.
func (s *GuestService) Update(ctx context.Context, id string, patch models.UpdateGuestRequest) (*models.Guest, error) {
	updated, err := s.repo.UpdateGuest(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated guest", slog.String("id", updated.ID))

	s.invalidateList()
	return updated, nil
}

// RSVP применяет самостоятельный ответ гостя и публикует событие RSVP.
func (s *GuestService) RSVP(ctx context.Context, id string, req models.RSVPRequest) (*models.Guest, error) {
	patch := models.UpdateGuestRequest{
		Email:               req.Email,
		Attending:           req.Attending,
		Plusses:             req.Plusses,
		DietaryRestrictions: req.DietaryRestrictions,
		KaraokeSong:         req.KaraokeSong,
	}
	updated, err := s.repo.UpdateGuest(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info("guest rsvp applied", slog.String("id", updated.ID),
		slog.Bool("attending", updated.Attending))

	s.invalidateList()

	if s.events != nil {
		event := models.RSVPEvent{
			GuestID:   updated.ID,
			LastName:  updated.LastName,
			FirstName: updated.FirstName,
			Attending: updated.Attending,
			Plusses:   updated.Plusses,
			Timestamp: time.Now().UTC(),
		}
		if err := s.events.Publish(rabbitmq.RSVPRoutingKey, event); err != nil {
			s.log.Warn("failed to publish rsvp event", sl.Err(err))
		}
	}
	return updated, nil
}

// Remove удаляет гостя по id и возвращает последнее состояние записи.
func (s *GuestService) Remove(ctx context.Context, id string) (*models.Guest, error) {
	removed, err := s.repo.RemoveGuest(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("removed guest", slog.String("id", removed.ID))

	s.invalidateList()
	return removed, nil
}

func (s *GuestService) invalidateList() {
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate guest list cache", sl.Err(err))
	}
}
