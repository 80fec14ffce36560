// service содержит бизнес-логику auth-сервиса: регистрацию и аутентификацию
// пользователей, выпуск/проверку access-токенов и отзыв токенов через denylist.
//
// Основные аспекты:
//   - Экземпляр Service не хранит состояние запроса и безопасен для
//     конкурентного использования из разных горутин при условии, что
//     переданные хранилища (storage.Storage, denylist.Store) потокобезопасны.
//   - Ошибки возвращаются сентинелами и далее маппятся транспортом
//     на HTTP-статусы (см. комментарии к переменным ошибок ниже).
//   - Жизненный цикл токена: Issued -> Active (до exp) -> Revoked | Expired.
//     Отзыв необратим; оба терминальных состояния окончательны для верификации.
package service

import (
	"errors"

	"github.com/hirenest/auth-service/internal/config"
	"github.com/hirenest/auth-service/internal/denylist"
	"github.com/hirenest/auth-service/internal/storage"
)

var (
	// ErrInvalidCredentials — пара email/пароль неверна или пользователь не найден.
	// Сообщение едино для обоих случаев, чтобы не раскрывать, какое поле не совпало.
	// Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingToken — в запросе нет bearer-токена. Транспорт: HTTP 401
	// (на logout — HTTP 400, как в публичном контракте этого эндпойнта).
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken — токен некорректен по формату/подписи. Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked — токен отозван (logout) и недействителен независимо
	// от срока. Транспорт: HTTP 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrEmailTaken — e-mail уже занят другим пользователем. Транспорт: HTTP 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidEmail — e-mail имеет некорректный формат. Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политике сложности. Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidRole — роль не из множества {employer, jobseeker}. Транспорт: HTTP 400.
	ErrInvalidRole = errors.New("invalid role")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage  storage.Storage
	denylist denylist.Store
	cfg      config.AuthConfig
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, denylist denylist.Store, cfg config.AuthConfig) *Service {
	return &Service{
		storage:  storage,
		denylist: denylist,
		cfg:      cfg,
	}
}
