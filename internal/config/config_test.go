package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Вспомогательные хелперы.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML с заданными значениями (не зависящими от дефолтов).
const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "6000"
auth:
  jwt_secret: "super-secret"
  access_token_ttl: "10m"
  issuer: "issuerX"
  audience: ["hirenest-api", "web"]
db:
  mongo_url: "mongodb://localhost:27017/hirenest"
redis:
  redis_url: "redis://localhost:6379/0"
  key_prefix: "bl_"
timeouts:
  service: "3s"
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
auth:
  jwt_secret: "min-secret"
db:
  mongo_url: "mongodb://localhost/min"
redis:
  redis_url: "redis://localhost:6379/1"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
auth:
  jwt_secret: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	require.Equal(t, "6000", cfg.HTTP.Port)
	require.Equal(t, "127.0.0.1:6000", cfg.HTTP.Addr())

	require.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 10*time.Minute, cfg.Auth.AccessTokenTTL)
	require.Equal(t, "issuerX", cfg.Auth.Issuer)
	require.ElementsMatch(t, []string{"hirenest-api", "web"}, cfg.Auth.Audience)

	require.Equal(t, "mongodb://localhost:27017/hirenest", cfg.DB.MongoURL)
	require.Equal(t, "redis://localhost:6379/0", cfg.Redis.RedisURL)
	require.Equal(t, "bl_", cfg.Redis.KeyPrefix)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
}

func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "from_env_path.yaml", minimalYAML)

	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "min-secret", cfg.Auth.JWTSecret)
	require.Equal(t, "mongodb://localhost/min", cfg.DB.MongoURL)
	// Дефолты накладываются поверх отсутствующих полей.
	require.Equal(t, 10*time.Minute, cfg.Auth.AccessTokenTTL)
	require.Equal(t, "hirenest-auth", cfg.Auth.Issuer)
	require.Equal(t, "bl_", cfg.Redis.KeyPrefix)
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", minimalYAML)

	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "min-secret", cfg.Auth.JWTSecret)
}

func TestLoad_EnvOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "7m")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 7*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoad_EnvOnly(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir) // в пустой директории local.yaml нет.

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "only-env")
	t.Setenv("MONGO_URL", "mongodb://localhost/envonly")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "only-env", cfg.Auth.JWTSecret)
	require.Equal(t, "mongodb://localhost/envonly", cfg.DB.MongoURL)
	require.Equal(t, "redis://localhost:6379/2", cfg.Redis.RedisURL)
}

func TestLoad_EnvOnly_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGO_URL", "")
	t.Setenv("REDIS_URL", "")

	_, err := Load("")
	require.Error(t, err)
}
