package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/guestlist-backend/internal/models"
)

const guestColumns = `id, last_name, first_name, other_names, email, attending,
	max_plusses, plusses, dietary_restrictions, karaoke_song, added_by,
	date_created, date_modified`

func scanGuest(row pgx.Row) (*models.Guest, error) {
	var g models.Guest
	err := row.Scan(&g.ID, &g.LastName, &g.FirstName, &g.OtherNames, &g.Email,
		&g.Attending, &g.MaxPlusses, &g.Plusses, &g.DietaryRestrictions,
		&g.KaraokeSong, &g.AddedBy, &g.DateCreated, &g.DateModified)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// validGuestID отсекает строки, которые заведомо не являются uuid, до запроса:
// иначе приведение типа в Postgres вернуло бы SQL-ошибку вместо ErrGuestNotFound.
func validGuestID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// CreateGuest вставляет новую запись гостя и возвращает сохраненную запись.
func (s *Storage) CreateGuest(ctx context.Context, guest models.Guest) (*models.Guest, error) {
	const op = "storage.CreateGuest"

	query := `INSERT INTO guests (id, last_name, first_name, other_names, email,
			      attending, max_plusses, plusses, dietary_restrictions, karaoke_song,
			      added_by, date_created, date_modified)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING ` + guestColumns
	row := s.Pool.QueryRow(ctx, query,
		guest.ID, guest.LastName, guest.FirstName, guest.OtherNames, guest.Email,
		guest.Attending, guest.MaxPlusses, guest.Plusses, guest.DietaryRestrictions,
		guest.KaraokeSong, guest.AddedBy, guest.DateCreated, guest.DateModified)
	result, err := scanGuest(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadGuest возвращает запись гостя по её id.
func (s *Storage) ReadGuest(ctx context.Context, id string) (*models.Guest, error) {
	const op = "storage.ReadGuest"

	if !validGuestID(id) {
		return nil, fmt.Errorf("%s: %w", op, ErrGuestNotFound)
	}

	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	result, err := scanGuest(s.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrGuestNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListGuests возвращает всех гостей, отсортированных по фамилии.
func (s *Storage) ListGuests(ctx context.Context) ([]*models.Guest, error) {
	const op = "storage.ListGuests"

	query := `SELECT ` + guestColumns + ` FROM guests ORDER BY last_name ASC`
	rows, err := s.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Guest, 0)
	for rows.Next() {
		item, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// escapeLikePattern экранирует спецсимволы LIKE во вводе пользователя.
func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// SearchGuests ищет гостей по точному совпадению фамилии и вхождению
// имени без учета регистра в first_name или в любой элемент other_names.
// Пустое firstName совпадает с любым именем.
func (s *Storage) SearchGuests(ctx context.Context, lastName, firstName string) ([]*models.Guest, error) {
	const op = "storage.SearchGuests"

	pattern := "%" + escapeLikePattern(firstName) + "%"
	query := `SELECT ` + guestColumns + `
			  FROM guests
			  WHERE last_name = $1
			    AND (first_name ILIKE $2
			      OR EXISTS (SELECT 1 FROM unnest(other_names) AS n WHERE n ILIKE $2))`
	rows, err := s.Pool.Query(ctx, query, lastName, pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Guest, 0)
	for rows.Next() {
		item, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateGuest применяет частичное обновление к записи гостя: nil-поля
// не изменяются. Обновляет date_modified и возвращает новую версию записи.
func (s *Storage) UpdateGuest(ctx context.Context, id string, patch models.UpdateGuestRequest) (*models.Guest, error) {
	const op = "storage.UpdateGuest"

	if !validGuestID(id) {
		return nil, fmt.Errorf("%s: %w", op, ErrGuestNotFound)
	}

	query := `UPDATE guests
			  SET last_name = COALESCE($2, last_name),
			      first_name = COALESCE($3, first_name),
			      other_names = COALESCE($4, other_names),
			      email = COALESCE($5, email),
			      attending = COALESCE($6, attending),
			      max_plusses = COALESCE($7, max_plusses),
			      plusses = COALESCE($8, plusses),
			      dietary_restrictions = COALESCE($9, dietary_restrictions),
			      karaoke_song = COALESCE($10, karaoke_song),
			      date_modified = now()
			  WHERE id = $1
			  RETURNING ` + guestColumns
	row := s.Pool.QueryRow(ctx, query, id,
		patch.LastName, patch.FirstName, patch.OtherNames, patch.Email,
		patch.Attending, patch.MaxPlusses, patch.Plusses,
		patch.DietaryRestrictions, patch.KaraokeSong)
	result, err := scanGuest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrGuestNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveGuest удаляет гостя по id и возвращает удаленную запись.
func (s *Storage) RemoveGuest(ctx context.Context, id string) (*models.Guest, error) {
	const op = "storage.RemoveGuest"

	if !validGuestID(id) {
		return nil, fmt.Errorf("%s: %w", op, ErrGuestNotFound)
	}

	query := `DELETE FROM guests WHERE id = $1 RETURNING ` + guestColumns
	result, err := scanGuest(s.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrGuestNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
