package models

import (
	"time"
)

// Customer status values. Status is the only customer field that is
// mutable after generation.
const (
	StatusActive   = "active"
	StatusChurned  = "churned"
	StatusProspect = "prospect"
)

// Customer represents a customer of the atelier, together with the
// aggregate fields the dashboard table displays. Revenue, OrderCount and
// LastOrderDate are computed once when the order graph is generated and
// are never recomputed afterwards (measurement edits do not change price).
type Customer struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Seq           uint64     `gorm:"index" json:"-"` // insertion order, assigned by the store
	Name          string     `gorm:"not null" json:"name"`
	Email         string     `gorm:"not null" json:"email"`
	Status        string     `gorm:"not null;default:'prospect'" json:"status"` // active, churned, prospect
	Revenue       float64    `json:"revenue"`
	OrderCount    int        `json:"orderCount"`
	LastOrderDate *time.Time `json:"lastOrderDate,omitempty"` // nil when the customer has no orders
	Orders        []Order    `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// CustomerSummary is the Customer view returned by the list endpoint:
// aggregate fields only, never the owned order sequence.
type CustomerSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Status        string     `json:"status"`
	Revenue       float64    `json:"revenue"`
	OrderCount    int        `json:"orderCount"`
	LastOrderDate *time.Time `json:"lastOrderDate,omitempty"`
}

// Summary projects a customer to its summary view.
func (c *Customer) Summary() CustomerSummary {
	return CustomerSummary{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Status:        c.Status,
		Revenue:       c.Revenue,
		OrderCount:    c.OrderCount,
		LastOrderDate: c.LastOrderDate,
	}
}

// IsValidStatus reports whether s is one of the known customer statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusChurned, StatusProspect:
		return true
	}
	return false
}
