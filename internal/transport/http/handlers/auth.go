package handlers

import (
	"errors"
	"net/http"

	"github.com/hirenest/auth-service/internal/models"
	"github.com/hirenest/auth-service/internal/service"
	"github.com/hirenest/auth-service/internal/transport/http/apierrors"
	"github.com/hirenest/auth-service/internal/transport/http/middleware"
)

type signupRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type signupResponse struct {
	User models.PublicUser `json:"user"`
}

// Signup регистрирует пользователя и возвращает его публичное представление.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var in signupRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.Write(w, r, http.StatusBadRequest, "invalid_argument", "invalid request body")
		return
	}

	user, err := h.svc.RegisterUser(r.Context(), in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{User: user.Public()})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// Login проверяет реквизиты и выпускает access-токен.
// Сессия на сервере не создаётся: до отзыва токен stateless.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.Write(w, r, http.StatusBadRequest, "invalid_argument", "invalid request body")
		return
	}

	if in.Email == "" || in.Password == "" {
		apierrors.Write(w, r, http.StatusBadRequest, "invalid_argument", "email and password are required")
		return
	}

	token, user, err := h.svc.LoginUser(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
		User:    user.Public(),
	})
}

type messageResponse struct {
	Message string `json:"message"`
}

// Logout отзывает предъявленный bearer-токен через denylist.
//
// Контракт эндпойнта: отсутствующий/битый/истёкший токен — 400
// (а не 401, как на защищённых маршрутах): это ошибка самого запроса
// на отзыв, аутентификации здесь не происходит.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Logout(r.Context(), middleware.BearerToken(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingToken):
			apierrors.Write(w, r, http.StatusBadRequest, "missing_token", "no token provided")
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
			apierrors.Write(w, r, http.StatusBadRequest, "invalid_token", "invalid token")
		default:
			apierrors.WriteError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out successfully"})
}

type protectedResponse struct {
	Message string          `json:"message"`
	User    identityPayload `json:"user"`
}

type identityPayload struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// Protected — образцовый защищённый маршрут: возвращает личность,
// которую положил в контекст мидлвар Authenticate.
func (h *Handlers) Protected(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrMissingToken)
		return
	}

	writeJSON(w, http.StatusOK, protectedResponse{
		Message: "this is a protected route",
		User: identityPayload{
			UserID: identity.UserID.String(),
			Email:  identity.Email,
			Role:   identity.Role,
		},
	})
}

// EmployerDashboard — маршрут, доступный только роли employer.
func (h *Handlers) EmployerDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "employer dashboard"})
}

// JobseekerDashboard — маршрут, доступный только роли jobseeker.
func (h *Handlers) JobseekerDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "jobseeker dashboard"})
}
