package services

import (
	"errors"
	"log"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/rabbitmq"
)

// CheckoutService converts a user's cart into a durable order. The whole
// conversion — stock reservation, order persistence, cart clearing — runs
// inside one database transaction; a failure at any step leaves no
// partial state behind.
type CheckoutService struct {
	tx       repositories.TxManager
	mqClient *rabbitmq.Client
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(tx repositories.TxManager, mqClient *rabbitmq.Client) *CheckoutService {
	return &CheckoutService{
		tx:       tx,
		mqClient: mqClient,
	}
}

// reservation pairs a cart line with the product snapshot returned by the
// stock decrement. Subtotals use the decrement-time price, so a price
// change between cart display and checkout is charged at the newer price.
type reservation struct {
	productID string
	quantity  int
	subtotal  float64
}

// Checkout places an order for the user's entire cart.
//
// Inside a single transaction it loads the cart, decrements stock for
// every line item (first insufficiency or missing product aborts
// everything), persists the order header to obtain its ID, bulk-inserts
// the line items, back-fills the total and clears the cart's items. The
// cart row itself survives. On commit an order.created event is
// published; publish failures are logged, not propagated.
func (s *CheckoutService) Checkout(customerID string, shipping models.ShippingDetails) (*models.Order, error) {
	var placed *models.Order

	err := s.tx.WithinTransaction(func(r repositories.TxRepos) error {
		cart, err := r.Carts.GetByUserID(customerID)
		if err != nil {
			if errors.Is(err, models.ErrCartNotFound) {
				return models.ErrEmptyCart
			}
			return err
		}

		items, err := r.Carts.GetItems(cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return models.ErrEmptyCart
		}

		// Reserve stock for every line before anything is persisted.
		// AdjustStock is a single conditional update, so two concurrent
		// checkouts cannot both take the last unit.
		var total float64
		reservations := make([]reservation, 0, len(items))
		for _, item := range items {
			product, err := r.Products.AdjustStock(item.ProductID, item.Quantity, models.StockDecrement)
			if err != nil {
				return err
			}
			subtotal := product.Price * float64(item.Quantity)
			total += subtotal
			reservations = append(reservations, reservation{
				productID: item.ProductID,
				quantity:  item.Quantity,
				subtotal:  subtotal,
			})
		}

		// Persist the header first to obtain the order ID the line items
		// reference. The total is back-filled once all lines are priced.
		order := &models.Order{
			CustomerID:   customerID,
			CustomerName: shipping.CustomerName,
			Phone:        shipping.Phone,
			Address:      shipping.Address,
			Total:        0,
			Status:       models.StatusPending,
		}
		if err := r.Orders.Create(order); err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(reservations))
		for _, res := range reservations {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: res.productID,
				Quantity:  res.quantity,
				Subtotal:  res.subtotal,
			})
		}
		if err := r.Orders.CreateItems(orderItems); err != nil {
			return err
		}
		if err := r.Orders.UpdateTotal(order.ID, total); err != nil {
			return err
		}

		if err := r.Carts.ClearItems(cart.ID); err != nil {
			return err
		}

		order.Total = total
		order.Items = orderItems
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"order_id":    placed.ID,
			"customer_id": placed.CustomerID,
			"status":      placed.Status,
			"total":       placed.Total,
		}
		if err := s.mqClient.PublishOrderEvent(rabbitmq.KeyOrderCreated, event); err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", placed.ID, err)
		}
	} else {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
	}

	return placed, nil
}
