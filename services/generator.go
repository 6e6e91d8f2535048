package services

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
	"time"

	"atelier-api/models"
)

// Generation bounds for mock order graphs. Exact distributions are not a
// contract; the invariants (frozen totals, ascending order dates, unique
// IDs) are.
const (
	maxOrdersPerCustomer = 10
	maxItemsPerOrder     = 5
	minItemPrice         = 100
	maxItemPrice         = 1000
	maxOrderAgeDays      = 365
)

var garments = []struct {
	name     string
	category string
}{
	{"Two-Piece Suit", "Suits"},
	{"Three-Piece Suit", "Suits"},
	{"Dinner Jacket", "Jackets"},
	{"Blazer", "Jackets"},
	{"Oxford Shirt", "Shirts"},
	{"Linen Shirt", "Shirts"},
	{"Wool Trousers", "Trousers"},
	{"Chinos", "Trousers"},
	{"Waistcoat", "Waistcoats"},
	{"Overcoat", "Outerwear"},
	{"Trench Coat", "Outerwear"},
	{"Evening Gown", "Dresses"},
}

var firstNames = []string{
	"Amelia", "Benjamin", "Charlotte", "Daniel", "Eleanor", "Felix",
	"Grace", "Henry", "Isabella", "James", "Katherine", "Liam",
	"Margaret", "Nathan", "Olivia", "Patrick", "Rosalind", "Samuel",
	"Theodora", "Victor",
}

var lastNames = []string{
	"Abernathy", "Blackwood", "Carmichael", "Davenport", "Ellison",
	"Fairbanks", "Galloway", "Harrington", "Kensington", "Lockhart",
	"Montgomery", "Pemberton", "Sinclair", "Thornton", "Whitfield",
}

var statuses = []string{models.StatusActive, models.StatusChurned, models.StatusProspect}

// seedFor derives a deterministic RNG seed from a customer ID, so that
// fallback creation for the same unknown ID always synthesizes the same
// graph shape.
func seedFor(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}

// GenerateCustomer synthesizes a full customer graph for an ID that was
// not found in the store. The identity is a placeholder derived from the
// ID; the order graph obeys the same invariants as seeded customers.
func GenerateCustomer(id string) models.Customer {
	r := rand.New(rand.NewSource(seedFor(id)))
	c := models.Customer{
		ID:     id,
		Name:   fmt.Sprintf("Customer %s", id),
		Email:  fmt.Sprintf("%s@example.com", strings.ToLower(id)),
		Status: statuses[r.Intn(len(statuses))],
	}
	attachOrders(&c, r, time.Now())
	return c
}

// SeedCustomers builds n customers (cust-1 .. cust-n) with identities
// drawn from the name vocabularies.
func SeedCustomers(n int) []models.Customer {
	customers := make([]models.Customer, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("cust-%d", i)
		r := rand.New(rand.NewSource(seedFor(id)))
		first := firstNames[r.Intn(len(firstNames))]
		last := lastNames[r.Intn(len(lastNames))]
		c := models.Customer{
			ID:     id,
			Name:   first + " " + last,
			Email:  fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
			Status: statuses[r.Intn(len(statuses))],
		}
		attachOrders(&c, r, time.Now())
		customers = append(customers, c)
	}
	return customers
}

// attachOrders generates the order graph and fills in the aggregate
// fields. Totals and revenue are computed here, once, and never again.
func attachOrders(c *models.Customer, r *rand.Rand, now time.Time) {
	orderCount := r.Intn(maxOrdersPerCustomer + 1)
	orders := make([]models.Order, 0, orderCount)
	for i := 0; i < orderCount; i++ {
		order := models.Order{
			OrderID:    fmt.Sprintf("ord-%s-%d", c.ID, i+1),
			CustomerID: c.ID,
			OrderDate:  now.AddDate(0, 0, -(1 + r.Intn(maxOrderAgeDays))),
		}
		itemCount := 1 + r.Intn(maxItemsPerOrder)
		for j := 0; j < itemCount; j++ {
			g := garments[r.Intn(len(garments))]
			item := models.OrderItem{
				OrderItemID: fmt.Sprintf("itm-%s-%d-%d", c.ID, i+1, j+1),
				OrderID:     order.OrderID,
				ItemName:    g.name,
				Category:    g.category,
				Price:       float64(minItemPrice + r.Intn(maxItemPrice-minItemPrice+1)),
				CustomSize: models.CustomSize{
					Chest: float64(34 + r.Intn(15)),
					Waist: float64(26 + r.Intn(15)),
					Hips:  float64(34 + r.Intn(15)),
				},
			}
			order.TotalAmount += item.Price
			order.Items = append(order.Items, item)
		}
		orders = append(orders, order)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.Before(orders[j].OrderDate)
	})

	c.Orders = orders
	c.OrderCount = len(orders)
	c.Revenue = 0
	for i := range orders {
		c.Revenue += orders[i].TotalAmount
	}
	c.LastOrderDate = nil
	if len(orders) > 0 {
		last := orders[len(orders)-1].OrderDate
		c.LastOrderDate = &last
	}
}
