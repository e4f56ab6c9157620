package admin

import (
	"context"
	"testing"

	"damaloy/domain"
	psqlRepo "damaloy/internal/repository/postgres"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	err = db.AutoMigrate(&domain.User{}, &domain.Seller{}, &domain.Product{}, &domain.Order{})
	if err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func TestGetStatsAggregates(t *testing.T) {
	db := initTestDB(t)
	// nil cache: every read goes to the database
	service := NewAdminService(psqlRepo.NewStatsRepository(db), nil)

	require.NoError(t, db.Create(&domain.User{Name: "Anika", Email: "anika@example.com", Role: domain.RoleUser}).Error)
	require.NoError(t, db.Create(&domain.User{Name: "Rahim", Email: "rahim@example.com", Role: domain.RoleSeller}).Error)
	require.NoError(t, db.Create(&domain.User{Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin}).Error)

	require.NoError(t, db.Create(&domain.Seller{UserID: 2, StoreName: "Fresh Corner", Status: domain.SellerStatusApproved}).Error)
	require.NoError(t, db.Create(&domain.Product{SellerID: 1, Name: "Mango", Price: 10, Quantity: 5}).Error)

	require.NoError(t, db.Create(&domain.Order{UserID: 1, TotalAmount: 25.50, PaymentMethod: domain.PaymentMethodCOD}).Error)
	require.NoError(t, db.Create(&domain.Order{UserID: 1, TotalAmount: 10.00, PaymentMethod: domain.PaymentMethodStripe}).Error)

	stats, err := service.GetStats(context.Background())
	require.NoError(t, err)

	// only plain users count, not sellers or admins
	require.EqualValues(t, 1, stats.TotalUsers)
	require.EqualValues(t, 1, stats.TotalSellers)
	require.EqualValues(t, 1, stats.TotalProducts)
	require.InDelta(t, 35.50, stats.TotalRevenue, 0.001)
}

func TestGetStatsEmptyDatabase(t *testing.T) {
	db := initTestDB(t)
	service := NewAdminService(psqlRepo.NewStatsRepository(db), nil)

	stats, err := service.GetStats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.TotalUsers)
	require.Zero(t, stats.TotalRevenue)
}
