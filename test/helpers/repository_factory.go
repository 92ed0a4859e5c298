package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/sc-commander/internal/adapters/persistence"
)

// TestRepositories holds real repository instances for integration tests
type TestRepositories struct {
	DB         *gorm.DB
	Scoreboard *persistence.GormScoreboardRepository
}

// NewTestRepositories creates repositories over the shared test DB
func NewTestRepositories() *TestRepositories {
	db := SharedTestDB
	return &TestRepositories{
		DB:         db,
		Scoreboard: persistence.NewGormScoreboardRepository(db),
	}
}
