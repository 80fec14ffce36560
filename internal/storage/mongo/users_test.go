package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hirenest/auth-service/internal/models"
	"github.com/hirenest/auth-service/internal/storage"
	"github.com/stretchr/testify/require"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Без GO_TEST_INTEGRATION контейнер не поднимается, а сами тесты
// скипаются в mustNewMongo.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("MONGO_TEST_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	// Гасим контейнер *после* выполнения пакета тестов.
	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// mustNewMongo подключается к отдельной тестовой БД с уникальным именем
// и регистрирует очистку по завершении теста.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()

	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration test: set GO_TEST_INTEGRATION=1 to run")
	}

	baseURL := os.Getenv("MONGO_TEST_URL")
	if baseURL == "" {
		baseURL = "mongodb://localhost:27017"
	}

	url := baseURL + "/users_test_" + uuid.New().String()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, url)
	if err != nil {
		t.Fatalf("cannot connect to MongoDB: %v (MONGO_TEST_URL=%s)", err, baseURL)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

func testUser(email string) *models.User {
	now := time.Now().UTC().Truncate(time.Millisecond)

	return &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleJobseeker,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestSaveUser_AndLookup(t *testing.T) {
	m := mustNewMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	u := testUser("user@example.com")
	require.NoError(t, m.SaveUser(ctx, u))

	byEmail, err := m.UserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, u.Email, byEmail.Email)
	require.Equal(t, u.PasswordHash, byEmail.PasswordHash)
	require.Equal(t, models.RoleJobseeker, byEmail.Role)

	byID, err := m.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
}

func TestSaveUser_DuplicateEmail(t *testing.T) {
	m := mustNewMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	require.NoError(t, m.SaveUser(ctx, testUser("dup@example.com")))

	err := m.SaveUser(ctx, testUser("dup@example.com"))
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestUserByEmail_NotFound(t *testing.T) {
	m := mustNewMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err := m.UserByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserByID_NotFound(t *testing.T) {
	m := mustNewMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err := m.UserByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)
}
