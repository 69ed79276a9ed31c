package repositories_test

import (
	"errors"
	"testing"

	"pasar/internal/models"
	"pasar/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMTxManager_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)
	manager := repositories.NewGORMTxManager(db)

	require.NoError(t, repositories.NewGORMProductRepository(db).Create(
		&models.Product{ID: "p1", Name: "Keyboard", Price: 45.00, Stock: 5}))

	err := manager.WithinTransaction(func(r repositories.TxRepos) error {
		if _, err := r.Products.AdjustStock("p1", 2, models.StockDecrement); err != nil {
			return err
		}
		order := &models.Order{CustomerID: "user-1", Status: models.StatusPending}
		if err := r.Orders.Create(order); err != nil {
			return err
		}
		if err := r.Orders.CreateItems([]models.OrderItem{
			{OrderID: order.ID, ProductID: "p1", Quantity: 2, Subtotal: 90.00},
		}); err != nil {
			return err
		}
		return r.Orders.UpdateTotal(order.ID, 90.00)
	})
	assert.NoError(t, err)

	product, err := repositories.NewGORMProductRepository(db).GetByID("p1")
	assert.NoError(t, err)
	assert.Equal(t, 3, product.Stock)

	orders, err := repositories.NewGORMOrderRepository(db).GetByCustomer("user-1")
	assert.NoError(t, err)
	require.Len(t, orders, 1)
	assert.InDelta(t, 90.00, orders[0].Total, 1e-9)
}

func TestGORMTxManager_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	manager := repositories.NewGORMTxManager(db)

	require.NoError(t, repositories.NewGORMProductRepository(db).Create(
		&models.Product{ID: "p1", Name: "Keyboard", Price: 45.00, Stock: 5}))

	boom := errors.New("boom")
	err := manager.WithinTransaction(func(r repositories.TxRepos) error {
		if _, err := r.Products.AdjustStock("p1", 2, models.StockDecrement); err != nil {
			return err
		}
		if err := r.Orders.Create(&models.Order{CustomerID: "user-1", Status: models.StatusPending}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	// The closure's error comes back untouched.
	assert.EqualError(t, err, "boom")

	// Both writes rolled back together.
	product, err := repositories.NewGORMProductRepository(db).GetByID("p1")
	assert.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	orders, err := repositories.NewGORMOrderRepository(db).GetAll()
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGORMCartRepository_ClearItemsKeepsCart(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMCartRepository(db)

	cart := &models.Cart{UserID: "user-1"}
	require.NoError(t, repo.Create(cart))
	require.NoError(t, repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: "p1", Quantity: 2}))
	require.NoError(t, repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: "p2", Quantity: 1}))

	require.NoError(t, repo.ClearItems(cart.ID))

	items, err := repo.GetItems(cart.ID)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// The cart row itself stays behind for the next checkout.
	kept, err := repo.GetByUserID("user-1")
	assert.NoError(t, err)
	assert.Equal(t, cart.ID, kept.ID)
}

func TestGORMOrderRepository_HeaderAndItems(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{
		CustomerID:   "user-1",
		CustomerName: "Alice Putri",
		Phone:        "+62-811-000-111",
		Address:      "Jl. Merdeka 1",
		Status:       models.StatusPending,
	}
	require.NoError(t, repo.Create(order))
	require.NotEmpty(t, order.ID)

	require.NoError(t, repo.CreateItems([]models.OrderItem{
		{OrderID: order.ID, ProductID: "p1", Quantity: 2, Subtotal: 11.98},
		{OrderID: order.ID, ProductID: "p2", Quantity: 1, Subtotal: 5.00},
	}))
	require.NoError(t, repo.UpdateTotal(order.ID, 16.98))

	stored, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 16.98, stored.Total, 1e-9)
	assert.Equal(t, models.StatusPending, stored.Status)

	items, err := repo.GetItems(order.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	assert.NoError(t, repo.UpdateStatus(order.ID, models.StatusShipped))
	stored, err = repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)

	assert.ErrorIs(t, repo.UpdateStatus("ghost", models.StatusShipped), models.ErrOrderNotFound)
	assert.ErrorIs(t, repo.UpdateTotal("ghost", 1.0), models.ErrOrderNotFound)
}
