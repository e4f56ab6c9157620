package cart

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

	err = db.AutoMigrate(&domain.User{}, &domain.Seller{}, &domain.Product{}, &domain.CartItem{})
	if err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func seedProduct(t *testing.T, db *gorm.DB) domain.Product {
	t.Helper()

	store := domain.Seller{UserID: 1, StoreName: "Fresh Corner", Status: domain.SellerStatusApproved}
	require.NoError(t, db.Create(&store).Error)

	product := domain.Product{SellerID: store.ID, Name: "Mango", Price: 10.50, Unit: "kg", Quantity: 5}
	require.NoError(t, db.Create(&product).Error)

	return product
}

func TestAddUpsertsExistingLine(t *testing.T) {
	db := initTestDB(t)
	product := seedProduct(t, db)
	service := NewCartService(psqlRepo.NewCartRepository(db))

	item, created, err := service.Add(context.Background(), 1, product.ID, 2)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 2, item.Quantity)

	// second add of the same product increments, no new row
	item, created, err = service.Add(context.Background(), 1, product.ID, 3)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&domain.CartItem{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	db := initTestDB(t)
	product := seedProduct(t, db)
	service := NewCartService(psqlRepo.NewCartRepository(db))

	item, created, err := service.Add(context.Background(), 1, product.ID, 0)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 1, item.Quantity)
}

func TestGetCartJoinsProductAndStore(t *testing.T) {
	db := initTestDB(t)
	product := seedProduct(t, db)
	service := NewCartService(psqlRepo.NewCartRepository(db))

	_, _, err := service.Add(context.Background(), 1, product.ID, 2)
	require.NoError(t, err)

	lines, err := service.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "Mango", lines[0].Name)
	require.Equal(t, "Fresh Corner", lines[0].StoreName)
	require.InDelta(t, 10.50, lines[0].Price, 0.001)
}

func TestUpdateItemRejectsNonPositiveQuantity(t *testing.T) {
	db := initTestDB(t)
	product := seedProduct(t, db)
	service := NewCartService(psqlRepo.NewCartRepository(db))

	item, _, err := service.Add(context.Background(), 1, product.ID, 2)
	require.NoError(t, err)

	_, err = service.UpdateItem(context.Background(), item.ID, 0)
	require.ErrorIs(t, err, domain.ErrValidation)

	updated, err := service.UpdateItem(context.Background(), item.ID, 7)
	require.NoError(t, err)
	require.Equal(t, 7, updated.Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	db := initTestDB(t)
	product := seedProduct(t, db)
	service := NewCartService(psqlRepo.NewCartRepository(db))

	item, _, err := service.Add(context.Background(), 1, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, service.RemoveItem(context.Background(), item.ID))
	require.ErrorIs(t, service.RemoveItem(context.Background(), item.ID), domain.ErrNotFound)

	_, _, err = service.Add(context.Background(), 1, product.ID, 2)
	require.NoError(t, err)
	require.NoError(t, service.Clear(context.Background(), 1))

	lines, err := service.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, lines)
}
