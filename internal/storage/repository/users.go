package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/magabrotheeeer/guestlist-backend/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его запись.
func (s *Storage) RegisterUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	const op = "storage.RegisterUser"

	query := `INSERT INTO users (username, password_hash)
			  VALUES ($1, $2)
			  RETURNING uid, username, password_hash, date_created`
	u := &models.User{}
	err := s.Pool.QueryRow(ctx, query, username, passwordHash).
		Scan(&u.UID, &u.Username, &u.PasswordHash, &u.DateCreated)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"

	query := `SELECT uid, username, password_hash, date_created
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	err := s.Pool.QueryRow(ctx, query, username).
		Scan(&u.UID, &u.Username, &u.PasswordHash, &u.DateCreated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"

	query := `SELECT uid, username, password_hash, date_created
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	err := s.Pool.QueryRow(ctx, query, userUID).
		Scan(&u.UID, &u.Username, &u.PasswordHash, &u.DateCreated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
