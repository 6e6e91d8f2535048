package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier-api/models"
	"atelier-api/services"
)

// OrderController serves the expandable per-customer order history and
// inline measurement edits on order line items.
type OrderController struct {
	store         *services.CustomerStore
	mutation      *services.MutationService
	allowFallback bool
	logger        *zap.Logger
}

// NewOrderController wires the controller to the store and mutation
// service. allowFallback controls whether unknown customer IDs are
// synthesized on lookup (the default) or answered with 404.
func NewOrderController(store *services.CustomerStore, mutation *services.MutationService, allowFallback bool, logger *zap.Logger) *OrderController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderController{store: store, mutation: mutation, allowFallback: allowFallback, logger: logger}
}

// UpdateItemSizeRequest represents the request body for a measurement edit
type UpdateItemSizeRequest struct {
	OrderID     string                 `json:"orderId" binding:"required"`
	OrderItemID string                 `json:"orderItemId" binding:"required"`
	CustomSize  models.CustomSizeInput `json:"customSize" binding:"required"`
}

// ListOrders handles GET /customers/:id/orders - full order graph
func (ctl *OrderController) ListOrders(c *gin.Context) {
	id := c.Param("id")

	var (
		customer *models.Customer
		err      error
	)
	if ctl.allowFallback {
		customer, err = ctl.store.GetOrCreate(id)
	} else {
		customer, err = ctl.store.FindByID(id)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer " + id + " not found"})
		return
	}

	orders := customer.Orders
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateItemSize handles PATCH /customers/:id/orders - measurement edit
func (ctl *OrderController) UpdateItemSize(c *gin.Context) {
	var req UpdateItemSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId, orderItemId and customSize are required"})
		return
	}

	item, err := ctl.mutation.SetOrderItemSize(c.Param("id"), req.OrderID, req.OrderItemID, req.CustomSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Order item measurements updated successfully",
		"updatedItem": item,
	})
}
