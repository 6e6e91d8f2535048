package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDashboardFlow drives the API the way the dashboard does: page the
// customer table, edit a status inline, expand a customer's order
// history, edit a garment measurement, and re-fetch to confirm.
func TestDashboardFlow(t *testing.T) {
	router := newTestRouter(t, 12, true)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			assert.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(method, path, &buf)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		router.ServeHTTP(w, req)
		return w
	}

	// Page 1 of the table, highest revenue first.
	w := do("GET", "/customers?page=1&limit=5&sortBy=revenue&order=desc", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Customers  []map[string]interface{} `json:"customers"`
		Pagination map[string]interface{}   `json:"pagination"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Customers, 5)
	assert.Equal(t, float64(12), page.Pagination["totalItems"])
	assert.Equal(t, float64(3), page.Pagination["totalPages"])
	for i := 1; i < len(page.Customers); i++ {
		assert.GreaterOrEqual(t,
			page.Customers[i-1]["revenue"].(float64),
			page.Customers[i]["revenue"].(float64))
	}

	// The same query twice returns the same page.
	again := do("GET", "/customers?page=1&limit=5&sortBy=revenue&order=desc", nil)
	assert.Equal(t, w.Body.String(), again.Body.String())

	// Inline status edit on the first row.
	customerID := page.Customers[0]["id"].(string)
	w = do("PATCH", "/customers", map[string]string{"customerId": customerID, "status": "churned"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do("GET", "/customers?page=1&limit=20&search="+customerID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Find a customer with at least one order to edit.
	w = do("GET", "/customers?page=1&limit=20&sortBy=orderCount&order=desc", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.NotEmpty(t, page.Customers)
	target := page.Customers[0]
	assert.Greater(t, target["orderCount"].(float64), float64(0))
	targetID := target["id"].(string)

	// Expand the order history.
	w = do("GET", fmt.Sprintf("/customers/%s/orders", targetID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var history struct {
		Orders []struct {
			OrderID     string  `json:"orderId"`
			TotalAmount float64 `json:"totalAmount"`
			Items       []struct {
				OrderItemID string  `json:"orderItemId"`
				Price       float64 `json:"price"`
			} `json:"items"`
		} `json:"orders"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.NotEmpty(t, history.Orders)
	order := history.Orders[0]
	assert.NotEmpty(t, order.Items)
	item := order.Items[0]

	// Edit the measurements of one line item.
	w = do("PATCH", fmt.Sprintf("/customers/%s/orders", targetID), map[string]interface{}{
		"orderId":     order.OrderID,
		"orderItemId": item.OrderItemID,
		"customSize":  map[string]float64{"chest": 40, "waist": 32, "hips": 38},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Re-fetch: the size changed, price and order total did not.
	w = do("GET", fmt.Sprintf("/customers/%s/orders", targetID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var refetched struct {
		Orders []struct {
			OrderID     string  `json:"orderId"`
			TotalAmount float64 `json:"totalAmount"`
			Items       []struct {
				OrderItemID string             `json:"orderItemId"`
				Price       float64            `json:"price"`
				CustomSize  map[string]float64 `json:"customSize"`
			} `json:"items"`
		} `json:"orders"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &refetched))
	for _, o := range refetched.Orders {
		if o.OrderID != order.OrderID {
			continue
		}
		assert.Equal(t, order.TotalAmount, o.TotalAmount, "editing measurements must not change the total")
		for _, it := range o.Items {
			if it.OrderItemID == item.OrderItemID {
				assert.Equal(t, float64(40), it.CustomSize["chest"])
				assert.Equal(t, float64(32), it.CustomSize["waist"])
				assert.Equal(t, float64(38), it.CustomSize["hips"])
				assert.Equal(t, item.Price, it.Price)
			}
		}
	}
}

// TestFallbackCreationFlow exercises the unknown-ID behavior in both
// configurations.
func TestFallbackCreationFlow(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		router := newTestRouter(t, 3, true)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/customers/cust-from-before-restart/orders", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		// The synthesized customer is now part of the collection.
		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/customers?limit=20", nil)
		router.ServeHTTP(w, req)

		var page struct {
			Pagination map[string]interface{} `json:"pagination"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, float64(4), page.Pagination["totalItems"])
	})

	t.Run("disabled", func(t *testing.T) {
		router := newTestRouter(t, 3, false)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/customers/cust-from-before-restart/orders", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
