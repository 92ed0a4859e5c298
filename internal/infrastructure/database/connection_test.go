package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/infrastructure/config"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/database"
)

func TestNewConnection_UnsupportedType(t *testing.T) {
	_, err := database.NewConnection(&config.DatabaseConfig{Type: "mysql"})

	assert.ErrorContains(t, err, "unsupported database type")
}

func TestNewTestConnection_MigratesScoreboardTables(t *testing.T) {
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable("game_summaries"))
	assert.True(t, db.Migrator().HasTable("turn_records"))
}
