package middleware

import (
	"context"
	"net/http"

	"github.com/hirenest/auth-service/internal/models"
	"github.com/hirenest/auth-service/internal/service"
	"github.com/hirenest/auth-service/internal/transport/http/apierrors"
)

type identityKey struct{}

// Authenticator — контракт верификации токена, реализуемый service.Service.
// Выделен в интерфейс, чтобы мидлвар тестировался без живых хранилищ.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Identity, error)
}

// Authenticate — верификация bearer-токена на каждом защищённом маршруте.
// Проверка выполняется синхронно: до её успешного завершения запрос
// не достигает защищённого хендлера. Порядок внутренних проверок
// (denylist -> подпись/срок) — забота сервиса.
//
// На успехе кладёт подтверждённую Identity в контекст запроса.
func Authenticate(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := auth.Authenticate(r.Context(), BearerToken(r))
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает запрос дальше, только если роль подтверждённой
// Identity совпадает с требуемой. Ставится строго после Authenticate.
func RequireRole(role models.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				// Маршрут сконфигурирован без Authenticate — доступ закрыт.
				apierrors.WriteError(w, r, service.ErrMissingToken)
				return
			}

			if identity.Role != role {
				apierrors.Write(w, r, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFrom достаёт подтверждённую Identity из контекста запроса.
func IdentityFrom(ctx context.Context) (*service.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*service.Identity)
	return identity, ok && identity != nil
}
