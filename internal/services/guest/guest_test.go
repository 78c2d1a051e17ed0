package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/guestlist-backend/internal/models"
)

// MockRepository реализует интерфейс GuestRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateGuest(ctx context.Context, guest models.Guest) (*models.Guest, error) {
	args := m.Called(ctx, guest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guest), args.Error(1)
}

func (m *MockRepository) ReadGuest(ctx context.Context, id string) (*models.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guest), args.Error(1)
}

func (m *MockRepository) ListGuests(ctx context.Context) ([]*models.Guest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Guest), args.Error(1)
}

func (m *MockRepository) SearchGuests(ctx context.Context, lastName, firstName string) ([]*models.Guest, error) {
	args := m.Called(ctx, lastName, firstName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Guest), args.Error(1)
}

func (m *MockRepository) UpdateGuest(ctx context.Context, id string, patch models.UpdateGuestRequest) (*models.Guest, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guest), args.Error(1)
}

func (m *MockRepository) RemoveGuest(ctx context.Context, id string) (*models.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guest), args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockPublisher реализует интерфейс EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGuestServiceCreate(t *testing.T) {
	addedBy := "3f6a9e70-11ab-4f6e-8a7e-6a07c4a7b001"

	t.Run("успешное создание гостя", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		svc := NewGuestService(repo, cache, nil, newTestLogger())

		repo.On("CreateGuest", mock.Anything, mock.MatchedBy(func(g models.Guest) bool {
			_, err := uuid.Parse(g.ID)
			return err == nil && g.LastName == "Sweynsson" && !g.Attending && g.Plusses == 0 &&
				g.AddedBy != nil && *g.AddedBy == addedBy
		})).Return(&models.Guest{ID: "stored-id", LastName: "Sweynsson", FirstName: "Canute"}, nil)
		cache.On("Invalidate", "guests:all").Return(nil)

		guest, err := svc.Create(context.Background(), &addedBy, models.CreateGuestRequest{
			LastName:  "Sweynsson",
			FirstName: "Canute",
		})

		require.NoError(t, err)
		assert.Equal(t, "stored-id", guest.ID)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		svc := NewGuestService(repo, cache, nil, newTestLogger())

		repo.On("CreateGuest", mock.Anything, mock.AnythingOfType("models.Guest")).
			Return(nil, errors.New("db error"))

		guest, err := svc.Create(context.Background(), nil, models.CreateGuestRequest{
			LastName:  "Sweynsson",
			FirstName: "Canute",
		})

		require.Error(t, err)
		assert.Nil(t, guest)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

func TestGuestServiceList(t *testing.T) {
	t.Run("список из кеша", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		svc := NewGuestService(repo, cache, nil, newTestLogger())

		cache.On("Get", "guests:all", mock.Anything).
			Run(func(args mock.Arguments) {
				ptr := args.Get(1).(*[]*models.Guest)
				*ptr = []*models.Guest{{ID: "id-1", LastName: "Godwinson"}}
			}).
			Return(true, nil)

		guests, err := svc.List(context.Background())

		require.NoError(t, err)
		require.Len(t, guests, 1)
		assert.Equal(t, "Godwinson", guests[0].LastName)
		repo.AssertNotCalled(t, "ListGuests", mock.Anything)
	})

	t.Run("кеш пустой, список из хранилища", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		svc := NewGuestService(repo, cache, nil, newTestLogger())

		stored := []*models.Guest{
			{ID: "id-1", LastName: "Godwinson"},
			{ID: "id-2", LastName: "Sweynsson"},
		}
		cache.On("Get", "guests:all", mock.Anything).Return(false, nil)
		repo.On("ListGuests", mock.Anything).Return(stored, nil)
		cache.On("Set", "guests:all", stored, time.Hour).Return(nil)

		guests, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Len(t, guests, 2)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("ошибка кеша не мешает чтению из хранилища", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		svc := NewGuestService(repo, cache, nil, newTestLogger())

		cache.On("Get", "guests:all", mock.Anything).Return(false, errors.New("redis down"))
		repo.On("ListGuests", mock.Anything).Return([]*models.Guest{}, nil)
		cache.On("Set", "guests:all", mock.Anything, time.Hour).Return(errors.New("redis down"))

		guests, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Empty(t, guests)
	})
}

func TestGuestServiceRSVP(t *testing.T) {
	attending := true
	plusses := 2

	t.Run("успешный rsvp публикует событие", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		publisher := new(MockPublisher)
		svc := NewGuestService(repo, cache, publisher, newTestLogger())

		updated := &models.Guest{
			ID:        "id-1",
			LastName:  "Sweynsson",
			FirstName: "Canute",
			Attending: true,
			Plusses:   2,
		}
		repo.On("UpdateGuest", mock.Anything, "id-1", mock.MatchedBy(func(p models.UpdateGuestRequest) bool {
			return p.Attending != nil && *p.Attending && p.Plusses != nil && *p.Plusses == 2
		})).Return(updated, nil)
		cache.On("Invalidate", "guests:all").Return(nil)
		publisher.On("Publish", "rsvp", mock.MatchedBy(func(e models.RSVPEvent) bool {
			return e.GuestID == "id-1" && e.Attending && e.Plusses == 2
		})).Return(nil)

		guest, err := svc.RSVP(context.Background(), "id-1", models.RSVPRequest{
			Attending: &attending,
			Plusses:   &plusses,
		})

		require.NoError(t, err)
		assert.True(t, guest.Attending)
		publisher.AssertExpectations(t)
	})

	t.Run("ошибка публикации не ломает ответ", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		publisher := new(MockPublisher)
		svc := NewGuestService(repo, cache, publisher, newTestLogger())

		repo.On("UpdateGuest", mock.Anything, "id-1", mock.AnythingOfType("models.UpdateGuestRequest")).
			Return(&models.Guest{ID: "id-1", Attending: true}, nil)
		cache.On("Invalidate", "guests:all").Return(nil)
		publisher.On("Publish", "rsvp", mock.Anything).Return(errors.New("amqp down"))

		guest, err := svc.RSVP(context.Background(), "id-1", models.RSVPRequest{Attending: &attending})

		require.NoError(t, err)
		assert.NotNil(t, guest)
	})

	t.Run("ошибка хранилища не публикует событие", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		publisher := new(MockPublisher)
		svc := NewGuestService(repo, cache, publisher, newTestLogger())

		repo.On("UpdateGuest", mock.Anything, "id-1", mock.AnythingOfType("models.UpdateGuestRequest")).
			Return(nil, errors.New("db error"))

		guest, err := svc.RSVP(context.Background(), "id-1", models.RSVPRequest{Attending: &attending})

		require.Error(t, err)
		assert.Nil(t, guest)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestGuestServiceSearch(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := NewGuestService(repo, cache, nil, newTestLogger())

	repo.On("SearchGuests", mock.Anything, "Sweynsson", "can").
		Return([]*models.Guest{{ID: "id-1", LastName: "Sweynsson", FirstName: "Canute"}}, nil)

	guests, err := svc.Search(context.Background(), models.SearchGuestRequest{
		LastName:  "Sweynsson",
		FirstName: "can",
	})

	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Canute", guests[0].FirstName)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGuestServiceRemove(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := NewGuestService(repo, cache, nil, newTestLogger())

	repo.On("RemoveGuest", mock.Anything, "id-1").
		Return(&models.Guest{ID: "id-1", LastName: "Sweynsson"}, nil)
	cache.On("Invalidate", "guests:all").Return(nil)

	guest, err := svc.Remove(context.Background(), "id-1")

	require.NoError(t, err)
	assert.Equal(t, "id-1", guest.ID)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
