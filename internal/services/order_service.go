package services

import (
	"fmt"
	"log"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/rabbitmq"
)

// OrderService handles the read paths and status updates for orders.
// Order placement itself lives in CheckoutService.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// GetOrderByID returns an order with its line items. Admins and sellers
// may view any order; everyone else only their own.
func (s *OrderService) GetOrderByID(id, requesterID string, requesterRoles []string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if order.CustomerID != requesterID && !models.HasPrivilegedRole(requesterRoles) {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrForbidden)
	}

	items, err := s.orderRepo.GetItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// GetUserOrders returns a customer's orders, newest first, each with its
// line items attached.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByCustomer(userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(orders)
}

// GetAllOrders returns every order, newest first, with line items.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return s.attachItems(orders)
}

// UpdateOrderStatus moves an order to one of the five recognized
// statuses. Any recognized value is applied unconditionally; there is no
// transition table guarding e.g. delivered back to pending.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("status %q: %w", status, models.ErrInvalidStatus)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"order_id": id,
			"status":   status,
		}
		if err := s.mqClient.PublishOrderEvent(rabbitmq.KeyOrderStatusMoved, event); err != nil {
			log.Printf("Warning: Failed to publish status update event for order %s: %v", id, err)
		}
	}
	return nil
}

func (s *OrderService) attachItems(orders []models.Order) ([]models.Order, error) {
	for i := range orders {
		items, err := s.orderRepo.GetItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}
