// Package models содержит доменные структуры гостевого списка,
// а также вспомогательные типы для работы с данными из внешних источников (JSON-запросы).
package models

import "time"

// Guest представляет собой запись приглашенного гостя,
// используемую в бизнес-логике и хранилище.
// Поля Email, DietaryRestrictions, KaraokeSong и AddedBy могут быть nil —
// это означает, что значение не задано.
type Guest struct {
	ID                  string    `json:"id"`                            // Уникальный идентификатор (UUID)
	LastName            string    `json:"lastName"`                      // Фамилия
	FirstName           string    `json:"firstName"`                     // Имя
	OtherNames          []string  `json:"otherNames"`                    // Прозвища и альтернативные имена
	Email               *string   `json:"email,omitempty"`               // Электронная почта (уникальная, если задана)
	Attending           bool      `json:"attending"`                     // Подтвердил ли гость присутствие
	MaxPlusses          int       `json:"maxPlusses"`                    // Сколько дополнительных гостей разрешено привести
	Plusses             int       `json:"plusses"`                       // Сколько дополнительных гостей будет приведено
	DietaryRestrictions *string   `json:"dietaryRestrictions,omitempty"` // Пищевые ограничения
	KaraokeSong         *string   `json:"karaokeSong,omitempty"`         // Песня для караоке
	AddedBy             *string   `json:"addedBy,omitempty"`             // UID пользователя, создавшего запись
	DateCreated         time.Time `json:"dateCreated"`                   // Дата создания, не меняется
	DateModified        time.Time `json:"dateModified"`                  // Дата последнего изменения
}

// CreateGuestRequest используется для приёма данных из JSON-запроса
// на создание гостя. Имя и фамилия обязательны.
type CreateGuestRequest struct {
	LastName   string   `json:"lastName" validate:"required"`
	FirstName  string   `json:"firstName" validate:"required"`
	OtherNames []string `json:"otherNames,omitempty" validate:"omitempty,dive,max=100"`
	MaxPlusses int      `json:"maxPlusses,omitempty" validate:"omitempty,gte=0,lte=10"`
}

// UpdateGuestRequest описывает частичное обновление записи гостя.
// Поля-указатели: nil означает "не менять".
type UpdateGuestRequest struct {
	LastName            *string   `json:"lastName,omitempty" validate:"omitempty,min=1"`
	FirstName           *string   `json:"firstName,omitempty" validate:"omitempty,min=1"`
	OtherNames          *[]string `json:"otherNames,omitempty" validate:"omitempty,dive,max=100"`
	Email               *string   `json:"email,omitempty" validate:"omitempty,email,min=5,max=256"`
	Attending           *bool     `json:"attending,omitempty"`
	MaxPlusses          *int      `json:"maxPlusses,omitempty" validate:"omitempty,gte=0,lte=10"`
	Plusses             *int      `json:"plusses,omitempty" validate:"omitempty,gte=0,lte=10"`
	DietaryRestrictions *string   `json:"dietaryRestrictions,omitempty" validate:"omitempty,max=500"`
	KaraokeSong         *string   `json:"karaokeSong,omitempty" validate:"omitempty,max=50"`
}

// RSVPRequest описывает самостоятельный ответ гостя на приглашение.
// Гость идентифицирует себя только знанием id записи.
type RSVPRequest struct {
	Email               *string `json:"email,omitempty" validate:"omitempty,email,min=5,max=256"`
	Attending           *bool   `json:"attending,omitempty"`
	Plusses             *int    `json:"plusses,omitempty" validate:"omitempty,gte=0,lte=10"`
	DietaryRestrictions *string `json:"dietaryRestrictions,omitempty" validate:"omitempty,max=500"`
	KaraokeSong         *string `json:"karaokeSong,omitempty" validate:"omitempty,max=50"`
}

// SearchGuestRequest параметры публичного поиска гостей.
// Фамилия сверяется точно, имя — без учета регистра, по подстроке;
// пустое имя совпадает с любым.
type SearchGuestRequest struct {
	LastName  string `json:"lastName" validate:"required"`
	FirstName string `json:"firstName"`
}

// RSVPEvent сообщение, публикуемое в очередь уведомлений после успешного RSVP.
type RSVPEvent struct {
	GuestID   string    `json:"guest_id"`
	LastName  string    `json:"last_name"`
	FirstName string    `json:"first_name"`
	Attending bool      `json:"attending"`
	Plusses   int       `json:"plusses"`
	Timestamp time.Time `json:"timestamp"`
}
