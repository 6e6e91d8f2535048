package models

import (
	"math"
	"time"
)

// Order represents a single order placed by a customer. TotalAmount is
// fixed at creation as the sum of its item prices and is never updated
// by later edits, which only ever touch item measurements.
type Order struct {
	OrderID     string      `gorm:"primaryKey" json:"orderId"`
	CustomerID  string      `gorm:"not null;index" json:"-"` // foreign key to customers table
	OrderDate   time.Time   `gorm:"not null" json:"orderDate"`
	TotalAmount float64     `gorm:"not null" json:"totalAmount"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"items"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single garment line on an order. Price is immutable;
// CustomSize is the only field editable after creation.
type OrderItem struct {
	OrderItemID string     `gorm:"primaryKey" json:"orderItemId"`
	OrderID     string     `gorm:"not null;index" json:"-"` // foreign key to orders table
	ItemName    string     `gorm:"not null" json:"itemName"`
	Category    string     `gorm:"not null" json:"category"`
	Price       float64    `gorm:"not null" json:"price"`
	CustomSize  CustomSize `gorm:"embedded;embeddedPrefix:size_" json:"customSize"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// CustomSize holds the garment measurements for an order item.
type CustomSize struct {
	Chest float64 `json:"chest"`
	Waist float64 `json:"waist"`
	Hips  float64 `json:"hips"`
}

// Valid reports whether every measurement is a finite non-negative number.
func (s CustomSize) Valid() bool {
	for _, v := range []float64{s.Chest, s.Waist, s.Hips} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// CustomSizeInput is the wire shape of a measurement update. Pointer
// fields distinguish a missing measurement from an explicit zero.
type CustomSizeInput struct {
	Chest *float64 `json:"chest"`
	Waist *float64 `json:"waist"`
	Hips  *float64 `json:"hips"`
}

// Resolve validates the input and converts it to a CustomSize. The second
// return value is false if any measurement is missing, non-finite or
// negative.
func (in CustomSizeInput) Resolve() (CustomSize, bool) {
	if in.Chest == nil || in.Waist == nil || in.Hips == nil {
		return CustomSize{}, false
	}
	size := CustomSize{Chest: *in.Chest, Waist: *in.Waist, Hips: *in.Hips}
	if !size.Valid() {
		return CustomSize{}, false
	}
	return size, true
}
