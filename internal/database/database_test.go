package database_test

import (
	"context"
	"fmt"
	"testing"

	"zennexify/internal/config"
	"zennexify/internal/database"
	"zennexify/internal/models"
	"zennexify/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenGORM_SQLiteMigrates(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.OpenGORM(config.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseGORM(db) })

	for _, model := range []interface{}{&models.User{}, &models.Store{}, &models.Product{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Email"))
	assert.NoError(t, database.PingGORM(context.Background(), db))
}

func TestOpenGORM_UnknownDriver(t *testing.T) {
	_, err := database.OpenGORM("oracle", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported SQL driver")
}

func TestIndexes(t *testing.T) {
	indexes := database.Indexes()
	require.Len(t, indexes[repositories.UsersCollection], 2)
	for _, idx := range indexes[repositories.UsersCollection] {
		require.NotNil(t, idx.Options.Unique)
		assert.True(t, *idx.Options.Unique)
	}
	assert.Len(t, indexes[repositories.StoresCollection], 1)
	assert.Len(t, indexes[repositories.ProductsCollection], 1)
}
