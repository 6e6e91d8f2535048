package controllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"atelier-api/models"
	"atelier-api/services"
)

func setupTestStore(t *testing.T) *services.CustomerStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	store, err := services.NewCustomerStore(db, nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

// setupTestRouter wires the controllers the same way main does.
func setupTestRouter(t *testing.T, store *services.CustomerStore, allowFallback bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	querySvc := services.NewQueryService(store)
	mutationSvc := services.NewMutationService(store, nil)
	customerCtl := NewCustomerController(querySvc, mutationSvc, nil)
	orderCtl := NewOrderController(store, mutationSvc, allowFallback, nil)

	router := gin.New()
	router.GET("/customers", customerCtl.List)
	router.PATCH("/customers", customerCtl.UpdateStatus)
	router.GET("/customers/:id/orders", orderCtl.ListOrders)
	router.PATCH("/customers/:id/orders", orderCtl.UpdateItemSize)
	return router
}

func seedCustomers(t *testing.T, store *services.CustomerStore, n int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		date := base.AddDate(0, 0, -i)
		order := models.Order{
			OrderID:     fmt.Sprintf("order-%d", i),
			OrderDate:   date,
			TotalAmount: float64(100 * i),
			Items: []models.OrderItem{{
				OrderItemID: fmt.Sprintf("item-%d", i),
				OrderID:     fmt.Sprintf("order-%d", i),
				ItemName:    "Two-Piece Suit",
				Category:    "Suits",
				Price:       float64(100 * i),
				CustomSize:  models.CustomSize{Chest: 38, Waist: 30, Hips: 36},
			}},
		}
		customer := &models.Customer{
			ID:            fmt.Sprintf("cust-%d", i),
			Name:          fmt.Sprintf("Customer %02d", i),
			Email:         fmt.Sprintf("customer%02d@example.com", i),
			Status:        models.StatusActive,
			Revenue:       float64(100 * i),
			OrderCount:    1,
			LastOrderDate: &date,
			Orders:        []models.Order{order},
		}
		assert.NoError(t, store.Insert(customer))
	}
}
