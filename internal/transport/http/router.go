// http собирает REST-поверхность auth-сервиса: роутер chi, middleware-цепочку
// и регистрацию маршрутов.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hirenest/auth-service/internal/models"
	"github.com/hirenest/auth-service/internal/transport/http/handlers"
	"github.com/hirenest/auth-service/internal/transport/http/middleware"
)

// Service — совокупный контракт бизнес-слоя для HTTP-поверхности.
type Service interface {
	handlers.AuthService
	middleware.Authenticator
}

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчик и гистограмма запросов
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, svc Service) {
	// Публичные маршруты. Logout тоже публичный: он сам разбирает
	// bearer-токен и отвечает 400 на его отсутствие/некорректность.
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	// Защищённые маршруты: denylist + подпись/срок проверяются до хендлера.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.Authenticate(svc))

		pr.Get("/protected", h.Protected)

		pr.Route("/employer", func(er chi.Router) {
			er.Use(middleware.RequireRole(models.RoleEmployer))
			er.Get("/dashboard", h.EmployerDashboard)
		})

		pr.Route("/jobseeker", func(jr chi.Router) {
			jr.Use(middleware.RequireRole(models.RoleJobseeker))
			jr.Get("/dashboard", h.JobseekerDashboard)
		})
	})
}
