package orders

import (
	"context"
	"errors"
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

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Seller{},
		&domain.Product{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

type fakePayments struct {
	createErr error
	created   []int64
	cancelled []string
}

func (f *fakePayments) CreatePaymentIntent(_ context.Context, amount int64, currency string, _ map[string]string) (domain.PaymentIntent, error) {
	if f.createErr != nil {
		return domain.PaymentIntent{}, f.createErr
	}

	f.created = append(f.created, amount)
	return domain.PaymentIntent{
		ID:           "pi_test_1",
		ClientSecret: "pi_test_1_secret",
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}

func (f *fakePayments) CancelPaymentIntent(_ context.Context, intentID string) error {
	f.cancelled = append(f.cancelled, intentID)
	return nil
}

func newCheckoutService(t *testing.T, db *gorm.DB, payments *fakePayments) *OrdersService {
	t.Helper()
	return NewOrdersService(psqlRepo.NewOrdersRepository(db), psqlRepo.NewCartRepository(db), payments, "usd")
}

// seedCheckout sets up a buyer with two products in the cart: 2 x 10.50
// and 1 x 4.00, total 25.00.
func seedCheckout(t *testing.T, db *gorm.DB) domain.User {
	t.Helper()

	user := domain.User{Name: "Anika", Email: "anika@example.com", Role: domain.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	owner := domain.User{Name: "Rahim", Email: "rahim@example.com", Role: domain.RoleSeller}
	require.NoError(t, db.Create(&owner).Error)

	store := domain.Seller{UserID: owner.ID, SellerEmail: owner.Email, StoreName: "Fresh Corner", Status: domain.SellerStatusApproved}
	require.NoError(t, db.Create(&store).Error)

	mango := domain.Product{SellerID: store.ID, Name: "Mango", Price: 10.50, Quantity: 5}
	rice := domain.Product{SellerID: store.ID, Name: "Rice", Price: 4.00, Quantity: 10}
	require.NoError(t, db.Create(&mango).Error)
	require.NoError(t, db.Create(&rice).Error)

	require.NoError(t, db.Create(&domain.CartItem{UserID: user.ID, ProductID: mango.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&domain.CartItem{UserID: user.ID, ProductID: rice.ID, Quantity: 1}).Error)

	return user
}

func TestPlaceOrderStripe(t *testing.T) {
	db := initTestDB(t)
	user := seedCheckout(t, db)
	payments := &fakePayments{}
	service := newCheckoutService(t, db, payments)

	order, clientSecret, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          user.ID,
		PaymentMethod:   domain.PaymentMethodStripe,
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.NoError(t, err)

	require.NotZero(t, order.ID)
	require.InDelta(t, 25.00, order.TotalAmount, 0.001)
	require.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	require.Equal(t, domain.OrderStatusPending, order.OrderStatus)
	require.Equal(t, "pi_test_1_secret", clientSecret)

	// amount is in minor units
	require.Equal(t, []int64{2500}, payments.created)
	require.Empty(t, payments.cancelled)

	var items []domain.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 2)

	var mango domain.Product
	require.NoError(t, db.Where("name = ?", "Mango").First(&mango).Error)
	require.Equal(t, 3, mango.Quantity)

	var cartCount int64
	require.NoError(t, db.Model(&domain.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	require.Zero(t, cartCount)

	var buyer domain.User
	require.NoError(t, db.First(&buyer, user.ID).Error)
	require.Equal(t, "12 Lake Road, Dhaka", buyer.Address)
}

func TestPlaceOrderCashOnDelivery(t *testing.T) {
	db := initTestDB(t)
	user := seedCheckout(t, db)
	payments := &fakePayments{}
	service := newCheckoutService(t, db, payments)

	order, clientSecret, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          user.ID,
		PaymentMethod:   domain.PaymentMethodCOD,
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.NoError(t, err)
	require.Empty(t, clientSecret)
	require.Empty(t, order.StripePaymentIntentID)
	require.Empty(t, payments.created)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := initTestDB(t)
	payments := &fakePayments{}
	service := newCheckoutService(t, db, payments)

	user := domain.User{Name: "Empty", Email: "empty@example.com"}
	require.NoError(t, db.Create(&user).Error)

	_, _, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          user.ID,
		PaymentMethod:   domain.PaymentMethodCOD,
		ShippingAddress: "somewhere",
	})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := initTestDB(t)
	service := newCheckoutService(t, db, &fakePayments{})

	_, _, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          1,
		PaymentMethod:   "bkash",
		ShippingAddress: "somewhere",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        1,
		PaymentMethod: domain.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := initTestDB(t)
	user := seedCheckout(t, db)
	payments := &fakePayments{}
	service := newCheckoutService(t, db, payments)

	// drop stock below what the cart asks for
	require.NoError(t, db.Model(&domain.Product{}).Where("name = ?", "Mango").Update("quantity", 1).Error)

	_, _, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          user.ID,
		PaymentMethod:   domain.PaymentMethodStripe,
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// the opened intent was cancelled
	require.Equal(t, []string{"pi_test_1"}, payments.cancelled)

	// nothing persisted
	var orderCount int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)

	var itemCount int64
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, itemCount)

	var mango domain.Product
	require.NoError(t, db.Where("name = ?", "Mango").First(&mango).Error)
	require.Equal(t, 1, mango.Quantity)

	var cartCount int64
	require.NoError(t, db.Model(&domain.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	require.EqualValues(t, 2, cartCount)
}

func TestPlaceOrderPaymentFailureAborts(t *testing.T) {
	db := initTestDB(t)
	user := seedCheckout(t, db)
	payments := &fakePayments{createErr: errors.New("provider down")}
	service := newCheckoutService(t, db, payments)

	_, _, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          user.ID,
		PaymentMethod:   domain.PaymentMethodStripe,
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.ErrorIs(t, err, domain.ErrPaymentInitiation)

	var orderCount int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)

	var cartCount int64
	require.NoError(t, db.Model(&domain.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	require.EqualValues(t, 2, cartCount)
}

func TestGetUserOrdersIncludesItems(t *testing.T) {
	db := initTestDB(t)
	user := seedCheckout(t, db)
	service := newCheckoutService(t, db, &fakePayments{})

	_, _, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          user.ID,
		PaymentMethod:   domain.PaymentMethodCOD,
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.NoError(t, err)

	views, err := service.GetUserOrders(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Items, 2)

	names := []string{views[0].Items[0].ProductName, views[0].Items[1].ProductName}
	require.Contains(t, names, "Mango")
	require.Contains(t, names, "Rice")
}

func TestGetAllOrdersCarriesBuyer(t *testing.T) {
	db := initTestDB(t)
	user := seedCheckout(t, db)
	service := newCheckoutService(t, db, &fakePayments{})

	_, _, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          user.ID,
		PaymentMethod:   domain.PaymentMethodCOD,
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.NoError(t, err)

	views, err := service.GetAllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Anika", views[0].UserName)
	require.Equal(t, "anika@example.com", views[0].UserEmail)
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := initTestDB(t)
	user := seedCheckout(t, db)
	service := newCheckoutService(t, db, &fakePayments{})

	order, _, err := service.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          user.ID,
		PaymentMethod:   domain.PaymentMethodCOD,
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.NoError(t, err)

	// pending cannot jump straight to delivered
	_, err = service.UpdateStatus(context.Background(), order.ID, domain.OrderStatusDelivered)
	require.ErrorIs(t, err, domain.ErrValidation)

	updated, err := service.UpdateStatus(context.Background(), order.ID, domain.OrderStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusConfirmed, updated.OrderStatus)

	updated, err = service.UpdateStatus(context.Background(), order.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusDelivered, updated.OrderStatus)

	// delivered is terminal
	_, err = service.UpdateStatus(context.Background(), order.ID, domain.OrderStatusCancelled)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.UpdateStatus(context.Background(), 9999, domain.OrderStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
