package models

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль пользователя на джоб-борде.
type Role string

const (
	// RoleEmployer — работодатель: публикует вакансии, смотрит отклики.
	RoleEmployer Role = "employer"
	// RoleJobseeker — соискатель: откликается на вакансии.
	RoleJobseeker Role = "jobseeker"
)

// Valid сообщает, известна ли роль системе.
func (r Role) Valid() bool {
	return r == RoleEmployer || r == RoleJobseeker
}

// User — модель пользователя в системе.
// Email хранится в нормализованном виде (lower-case, без внешних пробелов)
// и уникален на уровне индекса в коллекции.
type User struct {
	ID           uuid.UUID `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         Role      `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// PublicUser — безопасное для клиента представление пользователя.
// PasswordHash сюда не попадает никогда.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public возвращает представление пользователя без чувствительных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
