package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pasar/internal/handlers"
	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// apiFixture wires the whole HTTP surface over an in-memory SQLite
// database, mirroring the production wiring minus the message broker.
type apiFixture struct {
	app      *fiber.App
	auth     *services.AuthService
	users    repositories.UserRepository
	roles    repositories.RoleRepository
	products repositories.ProductRepository
	carts    repositories.CartRepository
	orders   repositories.OrderRepository
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Role{}, &models.UserRole{},
		&models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	roleRepo := repositories.NewGORMRoleRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	txManager := repositories.NewGORMTxManager(db)

	authService := services.NewAuthService(userRepo, roleRepo, "integration-secret")
	userService := services.NewUserService(userRepo, roleRepo)
	roleService := services.NewRoleService(roleRepo, userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(txManager, nil)
	orderService := services.NewOrderService(orderRepo, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewUserHandler(userService).RegisterRoutes(protected)
	handlers.NewRoleHandler(roleService).RegisterRoutes(protected)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(protected)
	handlers.NewProductHandler(productService).RegisterRoutes(protected)
	handlers.NewCartHandler(cartService).RegisterRoutes(protected)
	handlers.NewOrderHandler(checkoutService, orderService).RegisterRoutes(protected)

	return &apiFixture{
		app:      app,
		auth:     authService,
		users:    userRepo,
		roles:    roleRepo,
		products: productRepo,
		carts:    cartRepo,
		orders:   orderRepo,
	}
}

// registerUser creates an account through the service layer and grants
// any extra roles on top of the default customer role.
func (f *apiFixture) registerUser(t *testing.T, email, password string, extraRoles ...string) string {
	t.Helper()

	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
	}
	require.NoError(t, f.auth.RegisterUser(user))

	for _, name := range extraRoles {
		role, err := f.roles.GetByName(name)
		if err != nil {
			role = &models.Role{Name: name, Description: name + " role"}
			require.NoError(t, f.roles.Create(role))
		}
		require.NoError(t, f.roles.Assign(&models.UserRole{
			UserID:     user.ID,
			RoleID:     role.ID,
			AssignedBy: user.ID,
		}))
	}

	token, err := f.auth.LoginUser(email, password)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatalf("decoding response body: %v", err)
	}
	return resp, decoded
}

var shippingBody = map[string]interface{}{
	"customer_name": "Alice Putri",
	"phone":         "+62-811-000-111",
	"address":       "Jl. Merdeka 1, Jakarta",
}

func TestAuthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	registerBody := map[string]interface{}{
		"first_name": "Alice",
		"last_name":  "Putri",
		"email":      "alice@example.com",
		"password":   "secret123",
	}
	resp, body := f.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// Registering the same email again is a conflict.
	resp, _ = f.request(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = f.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = f.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)

	// A protected route rejects missing and bogus tokens.
	resp, _ = f.request(t, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = f.request(t, http.MethodGet, "/api/v1/cart", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = f.request(t, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckoutFlow(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerUser(t, "buyer@example.com", "secret123")

	require.NoError(t, f.products.Create(&models.Product{
		ID: "p1", Name: "Coffee Beans", Price: 5.99, Stock: 10,
	}))

	resp, _ := f.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": "p1", "quantity": 2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := f.request(t, http.MethodPost, "/api/v1/orders/checkout", token, shippingBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	order, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 11.98, order["total"].(float64), 1e-9)
	assert.Equal(t, models.StatusPending, order["status"])
	items, ok := order["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "p1", line["product_id"])
	assert.InDelta(t, 11.98, line["subtotal"].(float64), 1e-9)

	// Stock was decremented and the cart emptied.
	product, err := f.products.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 8, product.Stock)

	resp, body = f.request(t, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	view := body["data"].(map[string]interface{})
	assert.Empty(t, view["items"])

	resp, body = f.request(t, http.MethodGet, "/api/v1/orders/my", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	orders, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, orders, 1)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerUser(t, "buyer@example.com", "secret123")

	require.NoError(t, f.products.Create(&models.Product{
		ID: "p1", Name: "Rare Vinyl", Price: 30.00, Stock: 2,
	}))

	resp, _ := f.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": "p1", "quantity": 5,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := f.request(t, http.MethodPost, "/api/v1/orders/checkout", token, shippingBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	// The client sees the business error itself, no transaction framing.
	assert.Equal(t, "product with ID p1: insufficient stock", body["message"])

	// Nothing committed: stock intact, no order, cart still loaded.
	product, err := f.products.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock)

	_, body = f.request(t, http.MethodGet, "/api/v1/orders/my", token, nil)
	orders, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, orders)

	_, body = f.request(t, http.MethodGet, "/api/v1/cart", token, nil)
	view := body["data"].(map[string]interface{})
	assert.Len(t, view["items"], 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerUser(t, "buyer@example.com", "secret123")

	resp, body := f.request(t, http.MethodPost, "/api/v1/orders/checkout", token, shippingBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "cart is empty", body["message"])
}

func TestCheckout_MissingShippingDetails(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerUser(t, "buyer@example.com", "secret123")

	resp, _ := f.request(t, http.MethodPost, "/api/v1/orders/checkout", token, map[string]interface{}{
		"customer_name": "Alice Putri",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderAuthorization(t *testing.T) {
	f := newAPIFixture(t)
	buyer := f.registerUser(t, "buyer@example.com", "secret123")
	other := f.registerUser(t, "other@example.com", "secret123")
	admin := f.registerUser(t, "admin@example.com", "secret123", models.RoleAdmin)

	require.NoError(t, f.products.Create(&models.Product{
		ID: "p1", Name: "Notebook", Price: 4.50, Stock: 10,
	}))
	resp, _ := f.request(t, http.MethodPost, "/api/v1/cart/items", buyer, map[string]interface{}{
		"product_id": "p1", "quantity": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body := f.request(t, http.MethodPost, "/api/v1/orders/checkout", buyer, shippingBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["data"].(map[string]interface{})["id"].(string)

	// The owner and staff can read the order; another customer cannot.
	resp, _ = f.request(t, http.MethodGet, "/api/v1/orders/"+orderID, buyer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = f.request(t, http.MethodGet, "/api/v1/orders/"+orderID, other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = f.request(t, http.MethodGet, "/api/v1/orders/"+orderID, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The full listing is staff only.
	resp, _ = f.request(t, http.MethodGet, "/api/v1/orders", buyer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, body = f.request(t, http.MethodGet, "/api/v1/orders", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	orders, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, orders, 1)
}

func TestOrderStatusUpdate(t *testing.T) {
	f := newAPIFixture(t)
	buyer := f.registerUser(t, "buyer@example.com", "secret123")
	admin := f.registerUser(t, "admin@example.com", "secret123", models.RoleAdmin)

	require.NoError(t, f.products.Create(&models.Product{
		ID: "p1", Name: "Notebook", Price: 4.50, Stock: 10,
	}))
	resp, _ := f.request(t, http.MethodPost, "/api/v1/cart/items", buyer, map[string]interface{}{
		"product_id": "p1", "quantity": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body := f.request(t, http.MethodPost, "/api/v1/orders/checkout", buyer, shippingBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["data"].(map[string]interface{})["id"].(string)

	// Customers cannot move an order's status.
	resp, _ = f.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", buyer, map[string]interface{}{
		"status": models.StatusShipped,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", admin, map[string]interface{}{
		"status": "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", admin, map[string]interface{}{
		"status": models.StatusShipped,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = f.request(t, http.MethodGet, "/api/v1/orders/"+orderID, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusShipped, body["data"].(map[string]interface{})["status"])
}

func TestProductWriteGuards(t *testing.T) {
	f := newAPIFixture(t)
	customer := f.registerUser(t, "buyer@example.com", "secret123")
	seller := f.registerUser(t, "seller@example.com", "secret123", models.RoleSeller)
	admin := f.registerUser(t, "admin@example.com", "secret123", models.RoleAdmin)

	// Categories are written by admins only.
	resp, body := f.request(t, http.MethodPost, "/api/v1/categories", admin, map[string]interface{}{
		"name": "Books", "description": "Printed things",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	categoryID := body["data"].(map[string]interface{})["id"].(string)

	resp, _ = f.request(t, http.MethodPost, "/api/v1/categories", seller, map[string]interface{}{
		"name": "Contraband",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	productBody := map[string]interface{}{
		"category_id": categoryID,
		"name":        "Go Programming",
		"price":       39.99,
		"stock":       5,
	}
	resp, _ = f.request(t, http.MethodPost, "/api/v1/products", customer, productBody)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = f.request(t, http.MethodPost, "/api/v1/products", seller, productBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	productID := body["data"].(map[string]interface{})["id"].(string)

	// Listings are open to any authenticated user.
	resp, body = f.request(t, http.MethodGet, "/api/v1/products", customer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, products, 1)

	// Restock via the stock primitive.
	resp, body = f.request(t, http.MethodPatch, "/api/v1/products/"+productID+"/stock", seller, map[string]interface{}{
		"quantity": 10, "direction": "increment",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 15, body["data"].(map[string]interface{})["stock"].(float64), 1e-9)

	resp, _ = f.request(t, http.MethodPatch, "/api/v1/products/"+productID+"/stock", seller, map[string]interface{}{
		"quantity": 100, "direction": "decrement",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
