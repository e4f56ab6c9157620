package review

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

	err = db.AutoMigrate(&domain.User{}, &domain.Seller{}, &domain.Product{}, &domain.Review{})
	if err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(psqlRepo.NewReviewRepository(db), psqlRepo.NewUserRepository(db))
}

func seedReviewFixtures(t *testing.T, db *gorm.DB) (domain.User, domain.Product) {
	t.Helper()

	buyer := domain.User{Name: "Anika", Email: "anika@example.com", PhotoURL: "https://cdn.example.com/anika.png", Role: domain.RoleUser}
	require.NoError(t, db.Create(&buyer).Error)

	product := domain.Product{SellerID: 1, Name: "Mango", Price: 10, Quantity: 5}
	require.NoError(t, db.Create(&product).Error)

	return buyer, product
}

func TestAddReviewReturnsAuthor(t *testing.T) {
	db := initTestDB(t)
	service := newReviewService(db)
	buyer, product := seedReviewFixtures(t, db)

	created, err := service.AddReview(context.Background(), &domain.Review{
		ProductID: product.ID,
		UserID:    buyer.ID,
		Rating:    4,
		Comment:   "Sweet and fresh",
	})
	require.NoError(t, err)
	require.Equal(t, 4, created.Rating)
	require.Equal(t, "Anika", created.UserName)
	require.Equal(t, buyer.PhotoURL, created.UserPhoto)
}

func TestAddReviewOnlyBuyersAllowed(t *testing.T) {
	db := initTestDB(t)
	service := newReviewService(db)
	_, product := seedReviewFixtures(t, db)

	merchant := domain.User{Name: "Rahim", Email: "rahim@example.com", Role: domain.RoleSeller}
	require.NoError(t, db.Create(&merchant).Error)

	_, err := service.AddReview(context.Background(), &domain.Review{
		ProductID: product.ID,
		UserID:    merchant.ID,
		Rating:    5,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddReviewOncePerProduct(t *testing.T) {
	db := initTestDB(t)
	service := newReviewService(db)
	buyer, product := seedReviewFixtures(t, db)

	_, err := service.AddReview(context.Background(), &domain.Review{
		ProductID: product.ID,
		UserID:    buyer.ID,
		Rating:    4,
	})
	require.NoError(t, err)

	_, err = service.AddReview(context.Background(), &domain.Review{
		ProductID: product.ID,
		UserID:    buyer.ID,
		Rating:    2,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddReviewRatingBounds(t *testing.T) {
	db := initTestDB(t)
	service := newReviewService(db)
	buyer, product := seedReviewFixtures(t, db)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.AddReview(context.Background(), &domain.Review{
			ProductID: product.ID,
			UserID:    buyer.ID,
			Rating:    rating,
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	db := initTestDB(t)
	service := newReviewService(db)
	buyer, product := seedReviewFixtures(t, db)

	created, err := service.AddReview(context.Background(), &domain.Review{
		ProductID: product.ID,
		UserID:    buyer.ID,
		Rating:    4,
		Comment:   "Sweet",
	})
	require.NoError(t, err)

	_, err = service.UpdateReview(context.Background(), created.ID, buyer.ID+1, 1, "not mine")
	require.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := service.UpdateReview(context.Background(), created.ID, buyer.ID, 5, "Even better second time")
	require.NoError(t, err)
	require.Equal(t, 5, updated.Rating)
	require.Equal(t, "Even better second time", updated.Comment)
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	db := initTestDB(t)
	service := newReviewService(db)
	buyer, product := seedReviewFixtures(t, db)

	created, err := service.AddReview(context.Background(), &domain.Review{
		ProductID: product.ID,
		UserID:    buyer.ID,
		Rating:    4,
	})
	require.NoError(t, err)

	require.ErrorIs(t, service.DeleteReview(context.Background(), created.ID, buyer.ID+1), domain.ErrForbidden)
	require.NoError(t, service.DeleteReview(context.Background(), created.ID, buyer.ID))

	reviews, err := service.GetProductReviews(context.Background(), product.ID)
	require.NoError(t, err)
	require.Empty(t, reviews)
}
