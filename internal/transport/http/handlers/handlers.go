package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hirenest/auth-service/internal/models"
)

// AuthService — контракт бизнес-логики, который потребляют хендлеры.
// Реализуется service.Service; в тестах подменяется фейком.
type AuthService interface {
	RegisterUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)
	LoginUser(ctx context.Context, email, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
}

// Handlers агрегирует зависимости HTTP-хендлеров.
type Handlers struct {
	svc AuthService
}

// New создаёт Handlers.
func New(svc AuthService) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
