package store

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2024, 3, 14, 10, 30, 0, 0, time.UTC)

// newTestStore opens a private in-memory sqlite database with every table migrated.
func newTestStore(t *testing.T) *gormStore {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))

	log, _ := test.NewNullLogger()
	s := newGormStore(db, log)
	s.now = func() time.Time { return testNow }
	return s
}

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies sqlmock.Argument interface.
func (a Any) Match(v driver.Value) bool {
	return true
}

// suffixes returns a suffix generator that yields codes in order, then repeats the last.
func suffixes(codes ...string) func() string {
	i := 0
	return func() string {
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c
	}
}

func seedNewBlock(t *testing.T, s *gormStore, material, shade string, thickness, qty int) int64 {
	t.Helper()
	b, err := s.CreateNewBlock(context.Background(), NewBlockInput{
		Material:  material,
		Shade:     shade,
		Thickness: thickness,
		Quantity:  qty,
		Brand:     "Vita",
	})
	require.NoError(t, err)
	return b.ID
}

func quietLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}
