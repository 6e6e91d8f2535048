package services

import (
	"fmt"

	"go.uber.org/zap"

	"atelier-api/models"
)

// MutationService validates edits and delegates them to the store. The
// only writable fields in the system are a customer's status and an
// order item's measurements; totals and revenue stay frozen.
type MutationService struct {
	store  *CustomerStore
	logger *zap.Logger
}

// NewMutationService creates a mutation service over the given store.
func NewMutationService(store *CustomerStore, logger *zap.Logger) *MutationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MutationService{store: store, logger: logger}
}

// SetCustomerStatus changes a customer's status. The status must be one
// of active, churned or prospect; nothing is mutated on a validation
// failure.
func (s *MutationService) SetCustomerStatus(customerID, status string) error {
	if customerID == "" {
		return fmt.Errorf("%w: customerId is required", ErrInvalidArgument)
	}
	if !models.IsValidStatus(status) {
		return fmt.Errorf("%w: status must be one of active, churned, prospect; got %q",
			ErrInvalidArgument, status)
	}

	ok, err := s.store.UpdateStatus(customerID, status)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
	}

	s.logger.Info("customer status updated",
		zap.String("customerId", customerID),
		zap.String("status", status),
	)
	return nil
}

// SetOrderItemSize replaces the measurements of one order item and
// returns the updated item. Every measurement must be present, finite
// and non-negative. The item's price and the order's total are left
// unchanged.
func (s *MutationService) SetOrderItemSize(customerID, orderID, orderItemID string, input models.CustomSizeInput) (*models.OrderItem, error) {
	if customerID == "" || orderID == "" || orderItemID == "" {
		return nil, fmt.Errorf("%w: customerId, orderId and orderItemId are required", ErrInvalidArgument)
	}
	size, ok := input.Resolve()
	if !ok {
		return nil, fmt.Errorf("%w: customSize requires finite non-negative chest, waist and hips",
			ErrInvalidArgument)
	}

	item, found, err := s.store.UpdateOrderItemSize(customerID, orderID, orderItemID, size)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: order item %s/%s/%s", ErrNotFound, customerID, orderID, orderItemID)
	}

	s.logger.Info("order item measurements updated",
		zap.String("customerId", customerID),
		zap.String("orderId", orderID),
		zap.String("orderItemId", orderItemID),
	)
	return item, nil
}
