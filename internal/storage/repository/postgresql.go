// Package repository реализует хранилище данных на основе PostgreSQL
// для управления гостевым списком и пользователями. Предоставляет методы
// создания, чтения, обновления, удаления и поиска гостей,
// а также работу с пользователями.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Ошибки уровня хранилища. Обработчики отображают их в HTTP-статусы.
var (
	// ErrGuestNotFound гость с указанным id не найден.
	ErrGuestNotFound = errors.New("guest not found")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken email уже занят другим гостем.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUserExists имя пользователя уже зарегистрировано.
	ErrUserExists = errors.New("user already registered")
)

// Storage инкапсулирует пул соединений с базой данных PostgreSQL
// и реализует методы работы с гостями и пользователями.
type Storage struct {
	Pool *pgxpool.Pool
}

// New создаёт пул подключений к PostgreSQL и проверяет доступность базы.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	pool, err := pgxpool.New(ctx, storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		Pool: pool,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.Pool.Close()
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(ctx context.Context, storage *Storage) error {
	var exists bool
	err := storage.Pool.QueryRow(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'guests'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table guests missing or query error: %w", err)
	}
	return nil
}
