// Package models содержит доменную модель пользователя системы.
// Структура используется в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя, управляющего гостевым списком.
// PasswordHash никогда не сериализуется в ответы API.
type User struct {
	UID          string    `json:"id"`       // Уникальный идентификатор пользователя
	Username     string    `json:"username"` // Имя пользователя (уникальное)
	PasswordHash string    `json:"-"`        // Хэш пароля пользователя
	DateCreated  time.Time `json:"-"`        // Дата регистрации
}

// RegisterRequest используется для приёма данных из JSON-запроса на регистрацию.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest используется для приёма данных из JSON-запроса на вход.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}
