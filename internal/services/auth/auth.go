// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/guestlist-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/password"
	"github.com/magabrotheeeer/guestlist-backend/internal/models"
	"github.com/magabrotheeeer/guestlist-backend/internal/storage/repository"
)

// ErrInvalidCredentials неверная пара имя/пароль. Не раскрывает,
// какая именно часть не совпала.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его запись.
	RegisterUser(ctx context.Context, username, passwordHash string) (*models.User, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по его UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию пользователей и выпуск токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и возвращает
// его запись вместе с подписанным токеном. Существующее имя пользователя не
// перезаписывается: возвращается repository.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (*models.User, string, error) {
	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", repository.ErrUserExists
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.RegisterUser(ctx, username, hashed)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login проверяет имя и пароль и возвращает пользователя с новым токеном.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me возвращает пользователя по uid из токена.
func (s *AuthService) Me(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}
