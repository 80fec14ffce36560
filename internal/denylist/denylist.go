// denylist хранит отозванные access-токены до их естественного истечения.
//
// Контракт — два атомарных по ключу вызова поверх key-value-хранилища с TTL:
//   - Revoke кладёт токен с TTL = остаток жизни токена (exp - now);
//   - IsRevoked отвечает, числится ли токен отозванным.
//
// Инвариант TTL: запись не должна переживать exp самого токена (лишнее
// хранение), но и не должна истекать раньше (иначе отозванный токен
// «оживёт»). Остаток считает вызывающая сторона, здесь TTL применяется как есть.
package denylist

import (
	"context"
	"time"
)

// Store — минимальный контракт denylist-хранилища.
// Реализации: Redis (прод) и in-memory (тесты/локальный режим).
type Store interface {
	// Revoke помечает токен отозванным на срок ttl.
	// Повторный вызов по тому же ключу перезаписывает TTL (остаток
	// только уменьшается со временем, продления не происходит).
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	// IsRevoked сообщает, отозван ли токен.
	IsRevoked(ctx context.Context, token string) (bool, error)
	// Close закрывает ресурсы хранилища.
	Close() error
}
