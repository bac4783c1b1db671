package services

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/davincidevllc/continue-leads/internal/db"
	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intake_test.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

type taxonomyFixture struct {
	Category types.Category
	Service  types.Service
	Site     types.Site
	Metro    types.Metro
}

func seedTaxonomy(t *testing.T, gdb *gorm.DB) taxonomyFixture {
	t.Helper()
	fx := taxonomyFixture{
		Category: types.Category{ID: uuid.New(), Slug: "home-services", Name: "Home Services"},
		Site:     types.Site{ID: uuid.New(), Domain: "atlantaroofpros.com", Name: "Atlanta Roof Pros"},
		Metro:    types.Metro{ID: uuid.New(), Slug: "atlanta", Name: "Atlanta", State: "GA", IsActive: true},
	}
	fx.Service = types.Service{ID: uuid.New(), CategoryID: fx.Category.ID, Slug: "roof-repair", Name: "Roof Repair"}
	for _, row := range []interface{}{&fx.Category, &fx.Service, &fx.Site, &fx.Metro} {
		if err := gdb.Create(row).Error; err != nil {
			t.Fatalf("seed taxonomy: %v", err)
		}
	}
	return fx
}
