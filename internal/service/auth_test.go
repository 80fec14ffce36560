package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hirenest/auth-service/internal/config"
	"github.com/hirenest/auth-service/internal/denylist"
	"github.com/hirenest/auth-service/internal/models"
	"github.com/hirenest/auth-service/internal/storage"
	"github.com/hirenest/auth-service/mocks"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:      "unit-secret",
		AccessTokenTTL: 10 * time.Minute,
		Issuer:         "hirenest-auth",
		Audience:       []string{"hirenest-api"},
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, denylist.NewMemoryStore(), testCfg())
	return svc, st, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := hashPassword(pw)
	require.NoError(t, err)
	return h
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	var saved *models.User
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		})

	user, err := svc.RegisterUser(ctx, "  Jane Doe  ", "Jane@Example.com", "Abcdef1!", models.RoleEmployer)
	require.NoError(t, err)
	require.NotNil(t, saved)

	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, "Jane Doe", user.Name)
	// Email уходит в хранилище нормализованным.
	require.Equal(t, "jane@example.com", user.Email)
	require.Equal(t, models.RoleEmployer, user.Role)
	// Хэш не совпадает с паролем и проверяется bcrypt-ом.
	require.NotEqual(t, "Abcdef1!", user.PasswordHash)
	require.True(t, checkPassword(user.PasswordHash, "Abcdef1!"))
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "n", "not-an-email", "Abcdef1!", models.RoleJobseeker)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterUser_WeakOrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "n", "u@e.com", "", models.RoleJobseeker)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyPassword)

	_, err = svc.RegisterUser(context.Background(), "n", "u@e.com", "short", models.RoleJobseeker)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWeakPassword)

	// Длинный, но однородный пароль тоже слабый.
	_, err = svc.RegisterUser(context.Background(), "n", "u@e.com", "abcdefgh", models.RoleJobseeker)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterUser_InvalidRole(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "n", "u@e.com", "Abcdef1!", models.Role("admin"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), "n", "user@example.com", "Abcdef1!", models.RoleJobseeker)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(errors.New("insert failed"))

	_, err := svc.RegisterUser(context.Background(), "n", "user@example.com", "Abcdef1!", models.RoleJobseeker)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUser_OK_ClaimsMatchStoredRecord(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	stored := &models.User{
		ID:           uuid.New(),
		Name:         "John",
		Email:        "user@example.com",
		PasswordHash: mustHashPW(t, "Abcdef1!"),
		Role:         models.RoleEmployer,
	}

	// Лукап идёт по нормализованному email независимо от регистра на входе.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(stored, nil)

	token, user, err := svc.LoginUser(context.Background(), "User@Example.com", "Abcdef1!")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, stored.ID, user.ID)

	// Декодированные claims точно совпадают с записью из хранилища.
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testCfg().JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, stored.ID.String(), claims.UserID)
	require.Equal(t, stored.Email, claims.Email)
	require.Equal(t, stored.Role, claims.Role)
	require.WithinDuration(t, time.Now().Add(10*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
}

func TestLoginUser_UnknownEmailAndWrongPassword_SameError(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Неизвестный email.
	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, storage.ErrNotFound)

	_, _, errUnknown := svc.LoginUser(context.Background(), "ghost@example.com", "Abcdef1!")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)

	// Неверный пароль при существующем пользователе.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{
			ID:           uuid.New(),
			Email:        "user@example.com",
			PasswordHash: mustHashPW(t, "Abcdef1!"),
			Role:         models.RoleJobseeker,
		}, nil)

	_, _, errWrongPW := svc.LoginUser(context.Background(), "user@example.com", "Wrong-pass9")
	require.ErrorIs(t, errWrongPW, ErrInvalidCredentials)

	// Обе ошибки неотличимы для клиента.
	require.Equal(t, errors.Unwrap(errUnknown).Error(), errors.Unwrap(errWrongPW).Error())
}

func TestLoginUser_EmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.LoginUser(context.Background(), "user@example.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_StorageError_NotAuthFailure(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(nil, errors.New("db down"))

	_, _, err := svc.LoginUser(context.Background(), "user@example.com", "Abcdef1!")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}
