package app

import (
	"context"
	"fmt"

	"zennexify/internal/config"
	"zennexify/internal/database"
	"zennexify/internal/repositories"
)

// storage is one backend's repositories plus its lifecycle hooks.
type storage struct {
	users    repositories.UserRepository
	stores   repositories.StoreRepository
	products repositories.ProductRepository
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

func openStorage(ctx context.Context, cfg config.Config) (*storage, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenGORM(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return &storage{
			users:    repositories.NewGORMUserRepository(db),
			stores:   repositories.NewGORMStoreRepository(db),
			products: repositories.NewGORMProductRepository(db),
			ping: func(ctx context.Context) error {
				return database.PingGORM(ctx, db)
			},
			close: func(context.Context) error {
				return database.CloseGORM(db)
			},
		}, nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &storage{
			users:    repositories.NewMongoUserRepository(db),
			stores:   repositories.NewMongoStoreRepository(db),
			products: repositories.NewMongoProductRepository(db),
			ping: func(ctx context.Context) error {
				return database.PingMongo(ctx, client)
			},
			close: client.Disconnect,
		}, nil

	case config.DriverMemory:
		return &storage{
			users:    repositories.NewMemoryUserRepository(),
			stores:   repositories.NewMemoryStoreRepository(),
			products: repositories.NewMemoryProductRepository(),
			ping:     func(context.Context) error { return nil },
			close:    func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}
