package services

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"atelier-api/models"
)

// CustomerStore owns the canonical collection of customers. It is
// constructed once at startup and injected into the services; the
// database behind it is in-memory SQLite unless configured otherwise.
//
// gin handles requests on concurrent goroutines, so every
// read-modify-write goes through mu to avoid lost updates.
type CustomerStore struct {
	db     *gorm.DB
	logger *zap.Logger

	mu      sync.Mutex
	nextSeq uint64
}

// NewCustomerStore wraps an already-migrated database connection.
func NewCustomerStore(db *gorm.DB, logger *zap.Logger) (*CustomerStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CustomerStore{db: db, logger: logger}

	var maxSeq int64
	if err := db.Model(&models.Customer{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
		return nil, fmt.Errorf("%w: reading sequence: %v", ErrInternal, err)
	}
	s.nextSeq = uint64(maxSeq)
	return s, nil
}

// Seed populates the store with n generated customers.
func (s *CustomerStore) Seed(n int) error {
	for _, c := range SeedCustomers(n) {
		customer := c
		if err := s.Insert(&customer); err != nil {
			return err
		}
	}
	s.logger.Info("store seeded", zap.Int("customers", n))
	return nil
}

// Insert adds a customer (and its full order graph) to the collection,
// assigning its position in insertion order.
func (s *CustomerStore) Insert(c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(c)
}

func (s *CustomerStore) insertLocked(c *models.Customer) error {
	s.nextSeq++
	c.Seq = s.nextSeq
	if err := s.db.Create(c).Error; err != nil {
		s.nextSeq--
		return fmt.Errorf("%w: inserting customer %s: %v", ErrInternal, c.ID, err)
	}
	return nil
}

// ListAll returns a snapshot of the whole collection in insertion order,
// with each customer's orders ascending by date.
func (s *CustomerStore) ListAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_date ASC")
		}).
		Preload("Orders.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_item_id ASC")
		}).
		Order("seq ASC").
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing customers: %v", ErrInternal, err)
	}
	return customers, nil
}

// FindByID returns the customer with the given ID, or nil if absent.
func (s *CustomerStore) FindByID(id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_date ASC")
		}).
		Preload("Orders.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_item_id ASC")
		}).
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: finding customer %s: %v", ErrInternal, id, err)
	}
	return &customer, nil
}

// GetOrCreate returns the customer with the given ID, synthesizing and
// inserting one when it does not exist. The UI may hold customer IDs
// across a restart that wiped this store; the fallback keeps those links
// working instead of surfacing a hard miss.
func (s *CustomerStore) GetOrCreate(id string) (*models.Customer, error) {
	s.mu.Lock()
	existing, err := s.FindByID(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if existing != nil {
		s.mu.Unlock()
		return existing, nil
	}

	customer := GenerateCustomer(id)
	if err := s.insertLocked(&customer); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.logger.Info("synthesized customer on lookup miss",
		zap.String("customerId", id),
		zap.Int("orderCount", customer.OrderCount),
	)
	return s.FindByID(id)
}

// UpdateStatus sets the customer's status in place. It reports false when
// no customer matches; it does not validate the status value — that is
// the mutation service's job.
func (s *CustomerStore) UpdateStatus(id, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.Model(&models.Customer{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return false, fmt.Errorf("%w: updating status for %s: %v", ErrInternal, id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpdateOrderItemSize traverses customer -> order -> item and replaces
// the item's measurements in place. It reports false at the first missing
// link. Price and the order's total are deliberately untouched.
func (s *CustomerStore) UpdateOrderItemSize(customerID, orderID, orderItemID string, size models.CustomSize) (*models.OrderItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if err := s.db.Model(&models.Customer{}).Where("id = ?", customerID).Count(&count).Error; err != nil {
		return nil, false, fmt.Errorf("%w: looking up customer %s: %v", ErrInternal, customerID, err)
	}
	if count == 0 {
		return nil, false, nil
	}

	if err := s.db.Model(&models.Order{}).
		Where("order_id = ? AND customer_id = ?", orderID, customerID).
		Count(&count).Error; err != nil {
		return nil, false, fmt.Errorf("%w: looking up order %s: %v", ErrInternal, orderID, err)
	}
	if count == 0 {
		return nil, false, nil
	}

	var item models.OrderItem
	err := s.db.First(&item, "order_item_id = ? AND order_id = ?", orderItemID, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: looking up order item %s: %v", ErrInternal, orderItemID, err)
	}

	item.CustomSize = size
	if err := s.db.Model(&item).Updates(map[string]interface{}{
		"size_chest": size.Chest,
		"size_waist": size.Waist,
		"size_hips":  size.Hips,
	}).Error; err != nil {
		return nil, false, fmt.Errorf("%w: updating order item %s: %v", ErrInternal, orderItemID, err)
	}
	return &item, true, nil
}

// Count returns the current collection size.
func (s *CustomerStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.Customer{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: counting customers: %v", ErrInternal, err)
	}
	return n, nil
}
