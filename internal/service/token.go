package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hirenest/auth-service/internal/models"
	"github.com/hirenest/auth-service/internal/pkg/log"
)

// Identity — подтверждённая личность носителя токена.
// Прокидывается транспортом в контекст запроса для защищённых маршрутов.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
}

type accessClaims struct {
	UserID string      `json:"uid"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateAccessToken выпускает подписанный access-токен с фиксированным
// горизонтом истечения от момента выпуска. Никакой записи о сессии при этом
// не создаётся: до отзыва токен полностью stateless.
func (s *Service) generateAccessToken(ctx context.Context, user *models.User, now time.Time) (string, error) {
	const op = "service.token.generateAccessToken"

	lg := log.From(ctx)

	claims := accessClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings(s.cfg.Audience),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// validateAccessToken проверяет подпись/срок/issuer/audience и декодирует claims.
func (s *Service) validateAccessToken(tokenStr string) (*Identity, *accessClaims, error) {
	const op = "service.token.validateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience...),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return &Identity{UserID: uid, Email: claims.Email, Role: claims.Role}, claims, nil
}

// Authenticate верифицирует bearer-токен защищённого запроса.
//
// Порядок проверок фиксирован: сначала denylist, затем подпись/срок —
// отклонить заведомо отозванный токен дешевле, чем проверять подпись.
// Ошибка самого хранилища denylist НЕ интерпретируется как ошибка
// аутентификации и уходит наверх инфраструктурной.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	const op = "service.token.Authenticate"

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	revoked, err := s.denylist.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: denylist lookup: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	identity, _, err := s.validateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return identity, nil
}

// Logout отзывает действующий access-токен: остаток жизни токена становится
// TTL-ом записи в denylist, поэтому запись никогда не переживает exp токена.
//
// Уже истёкший или повреждённый токен отклоняется (ErrTokenExpired /
// ErrInvalidToken): verifier отвергнет его и без записи. Повторный logout
// того же токена идемпотентен — TTL пересчитывается от текущего момента
// и только уменьшается.
func (s *Service) Logout(ctx context.Context, token string) error {
	const op = "service.token.Logout"

	lg := log.From(ctx)

	if token == "" {
		return fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	_, claims, err := s.validateAccessToken(token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		// Токен дожил до exp между валидацией и этим моментом: запись не нужна.
		return nil
	}

	if err := s.denylist.Revoke(ctx, token, ttl); err != nil {
		lg.Error("token_revoke_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
