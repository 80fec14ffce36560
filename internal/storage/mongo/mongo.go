package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	defaultDBName   = "hirenest"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	client *mongodriver.Client
	db     *mongodriver.Database
	users  *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает
// коллекции и обеспечивает индексацию.
func New(ctx context.Context, mongoURL string) (*Mongo, error) {
	if mongoURL == "" {
		return nil, fmt.Errorf("mongo: empty url")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(mongoURL))

	m := &Mongo{
		client: cli,
		db:     db,
		users:  db.Collection(usersCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close разрывает соединение с кластером.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт индексы, необходимые auth-сервису.
// Уникальный индекс по email — единственный источник гарантии
// case-insensitive-уникальности: email пишется уже нормализованным.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	idx := mongodriver.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	}

	if _, err := m.users.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
