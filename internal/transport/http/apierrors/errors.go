// apierrors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает ошибку сервисного слоя (сентинелы пакета service),
// на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Инфраструктурные ошибки (БД/Redis недоступны) не входят в таксономию
// аутентификации и всегда маппятся в 500/internal.
package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hirenest/auth-service/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ для фронта.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - сентинелы service.* маппятся по таблице ниже;
//   - всё прочее — 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := mapError(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	write(w, r, status, resp)
}

// Write пишет явно заданную ошибку — для эндпойнтов с собственным контрактом
// статусов (например, logout отвечает 400 на отсутствующий/битый токен).
func Write(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	write(w, r, status, ErrorResponse{Error: APIError{Code: code, Message: message}})
}

func write(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// mapError — базовый маппинг сентинелов сервиса -> HTTP/FE-код/сообщение.
//   - неверные реквизиты и все проблемы с токеном -> 401
//     (сообщение единое для неверного email и пароля — без перечисления полей);
//   - занятый email -> 409;
//   - ошибки валидации входа -> 400;
//   - прочее -> 500/internal.
func mapError(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid email or password"
	case errors.Is(err, service.ErrMissingToken):
		return http.StatusUnauthorized, "missing_token", "no token provided"
	case errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized, "token_revoked", "token has been revoked"
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "invalid_or_expired_token", "invalid or expired token"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "email_taken", "email already taken"
	case errors.Is(err, service.ErrInvalidEmail):
		return http.StatusBadRequest, "invalid_email", "invalid email format"
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest, "weak_password", "password is too weak"
	case errors.Is(err, service.ErrEmptyPassword):
		return http.StatusBadRequest, "empty_password", "password is required"
	case errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest, "invalid_role", "invalid role"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
