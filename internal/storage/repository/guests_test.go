package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/guestlist-backend/internal/models"
)

func TestCheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, CheckDatabaseReady(context.Background(), storage))
}

func TestStorage_CreateAndReadGuest(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	guest := GetTestGuestData()

	created, err := storage.CreateGuest(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, created.ID)
	assert.Equal(t, "Sweynsson", created.LastName)
	assert.Equal(t, []string{"Cnut the Great"}, created.OtherNames)
	assert.False(t, created.Attending)
	assert.Nil(t, created.Email)

	read, err := storage.ReadGuest(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, read.ID)

	_, err = storage.ReadGuest(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrGuestNotFound)

	_, err = storage.ReadGuest(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestStorage_ListGuestsSortedByLastName(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateGuest(t, "Sweynsson", "Canute", nil)
	factory.CreateGuest(t, "Aelfgifusson", "Sweyn", nil)
	factory.CreateGuest(t, "Godwinson", "Harold", nil)

	guests, err := storage.ListGuests(context.Background())
	require.NoError(t, err)
	require.Len(t, guests, 3)
	assert.Equal(t, "Aelfgifusson", guests[0].LastName)
	assert.Equal(t, "Godwinson", guests[1].LastName)
	assert.Equal(t, "Sweynsson", guests[2].LastName)
}

func TestStorage_SearchGuests(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateGuest(t, "Sweynsson", "Canute", []string{"Cnut the Great"})
	factory.CreateGuest(t, "Sweynsson", "Harthacnut", nil)
	factory.CreateGuest(t, "Godwinson", "Harold", nil)

	tests := []struct {
		name       string
		lastName   string
		firstName  string
		wantCount  int
		wantFirsts []string
	}{
		{
			name:       "точная фамилия, имя без учета регистра",
			lastName:   "Sweynsson",
			firstName:  "canute",
			wantCount:  1,
			wantFirsts: []string{"Canute"},
		},
		{
			name:      "подстрока имени",
			lastName:  "Sweynsson",
			firstName: "cnut",
			wantCount: 2,
		},
		{
			name:       "совпадение по альтернативному имени",
			lastName:   "Sweynsson",
			firstName:  "great",
			wantCount:  1,
			wantFirsts: []string{"Canute"},
		},
		{
			name:      "пустое имя совпадает с любым",
			lastName:  "Sweynsson",
			firstName: "",
			wantCount: 2,
		},
		{
			name:      "фамилия сверяется точно",
			lastName:  "sweynsson",
			firstName: "",
			wantCount: 0,
		},
		{
			name:      "символы LIKE не работают как шаблон",
			lastName:  "Sweynsson",
			firstName: "%",
			wantCount: 0,
		},
		{
			name:      "неизвестная фамилия",
			lastName:  "Knytlinga",
			firstName: "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guests, err := storage.SearchGuests(ctx, tt.lastName, tt.firstName)
			require.NoError(t, err)
			assert.Len(t, guests, tt.wantCount)
			for i, first := range tt.wantFirsts {
				assert.Equal(t, first, guests[i].FirstName)
			}
		})
	}
}

func TestStorage_UpdateGuest(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	id := factory.CreateGuest(t, "Sweynsson", "Canute", nil)

	attending := true
	plusses := 2
	song := "Bohemian Rhapsody"

	updated, err := storage.UpdateGuest(ctx, id, models.UpdateGuestRequest{
		Attending:   &attending,
		Plusses:     &plusses,
		KaraokeSong: &song,
	})
	require.NoError(t, err)
	assert.True(t, updated.Attending)
	assert.Equal(t, 2, updated.Plusses)
	require.NotNil(t, updated.KaraokeSong)
	assert.Equal(t, song, *updated.KaraokeSong)
	// Незатронутые поля сохраняются
	assert.Equal(t, "Canute", updated.FirstName)
	assert.True(t, updated.DateModified.After(updated.DateCreated))

	_, err = storage.UpdateGuest(ctx, "00000000-0000-0000-0000-000000000000",
		models.UpdateGuestRequest{Attending: &attending})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestStorage_UpdateGuestEmailUnique(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	first := factory.CreateGuest(t, "Sweynsson", "Canute", nil)
	second := factory.CreateGuest(t, "Godwinson", "Harold", nil)

	email := "king@example.com"
	_, err := storage.UpdateGuest(ctx, first, models.UpdateGuestRequest{Email: &email})
	require.NoError(t, err)

	_, err = storage.UpdateGuest(ctx, second, models.UpdateGuestRequest{Email: &email})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestStorage_RemoveGuest(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	id := factory.CreateGuest(t, "Sweynsson", "Canute", nil)

	removed, err := storage.RemoveGuest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, removed.ID)

	_, err = storage.ReadGuest(ctx, id)
	assert.ErrorIs(t, err, ErrGuestNotFound)

	_, err = storage.RemoveGuest(ctx, id)
	assert.ErrorIs(t, err, ErrGuestNotFound)
}
