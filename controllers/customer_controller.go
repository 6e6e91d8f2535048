package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier-api/services"
)

// CustomerController serves the customer table: the paginated list and
// inline status edits.
type CustomerController struct {
	query    *services.QueryService
	mutation *services.MutationService
	logger   *zap.Logger
}

// NewCustomerController wires the controller to its services.
func NewCustomerController(query *services.QueryService, mutation *services.MutationService, logger *zap.Logger) *CustomerController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerController{query: query, mutation: mutation, logger: logger}
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

// List handles GET /customers - one filtered, sorted page of summaries
func (ctl *CustomerController) List(c *gin.Context) {
	params := services.QueryParams{
		SortBy: c.DefaultQuery("sortBy", "name"),
		Order:  c.DefaultQuery("order", "asc"),
		Search: c.Query("search"),
	}

	var err error
	params.Page, err = intQuery(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}
	params.Limit, err = intQuery(c, "limit", 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	result, err := ctl.query.Query(params)
	if err != nil {
		respondError(c, err)
		return
	}

	totalPages := int(math.Ceil(float64(result.TotalItems) / float64(params.Limit)))
	c.JSON(http.StatusOK, gin.H{
		"customers": result.Items,
		"pagination": gin.H{
			"currentPage":  params.Page,
			"totalPages":   totalPages,
			"totalItems":   result.TotalItems,
			"itemsPerPage": params.Limit,
		},
	})
}

// UpdateStatus handles PATCH /customers - inline status edit
func (ctl *CustomerController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId and status are required"})
		return
	}

	if err := ctl.mutation.SetCustomerStatus(req.CustomerID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Customer status updated successfully",
		"customerId": req.CustomerID,
		"newStatus":  req.Status,
	})
}

// intQuery parses an integer query parameter with a default.
func intQuery(c *gin.Context, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

// respondError maps service errors onto HTTP status codes with the
// {error: message} body the dashboard expects.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
