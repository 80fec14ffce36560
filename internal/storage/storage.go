package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hirenest/auth-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
//
// Контракт по ошибкам:
//   - SaveUser возвращает ErrAlreadyExists при конфликте уникальности email;
//   - UserByEmail/UserByID возвращают ErrNotFound, если записи нет;
//   - любые прочие ошибки — инфраструктурные, наверх уходят как есть.
type UserStorage interface {
	// SaveUser создаёт нового пользователя.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по нормализованному email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	Close(ctx context.Context) error
}
