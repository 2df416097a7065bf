package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qrdrop/backend/common"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const (
	usersCollection = "users"
	filesCollection = "files"

	connectTimeout = 10 * time.Second
)

// DB bundles the stores of one backend.
type DB struct {
	Users UserStore
	Files FileStore

	close func(ctx context.Context) error
}

// InitDB opens the store selected by cfg.StoreDriver. For mongo it connects,
// pings the primary and ensures the collection indexes.
func InitDB(ctx context.Context, cfg *common.Config) (*DB, error) {
	switch cfg.StoreDriver {
	case common.StoreDriverMemory:
		common.SysLog("using in-memory store, records are lost on restart")
		return NewMemoryDB(), nil
	case common.StoreDriverMongo:
		return initMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func initMongo(ctx context.Context, uri, database string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	users := NewMongoUserStore(db.Collection(usersCollection))
	files := NewMongoFileStore(db.Collection(filesCollection))
	if err := users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := files.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	common.SysLog("MongoDB connected, database " + database)

	return &DB{
		Users: users,
		Files: files,
		close: client.Disconnect,
	}, nil
}

// NewMemoryDB returns a DB backed by in-process maps.
func NewMemoryDB() *DB {
	return &DB{
		Users: NewMemoryUserStore(),
		Files: NewMemoryFileStore(),
	}
}

func (db *DB) Close(ctx context.Context) error {
	if db == nil || db.close == nil {
		return nil
	}
	return db.close(ctx)
}
