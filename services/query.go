package services

import (
	"fmt"
	"sort"
	"strings"

	"atelier-api/models"
)

// QueryParams describes one page request against the customer collection.
type QueryParams struct {
	Page   int
	Limit  int
	SortBy string
	Order  string // "asc" or "desc"
	Search string
}

// QueryResult is one page of summaries plus the post-filter total, from
// which the caller derives the page count.
type QueryResult struct {
	Items      []models.CustomerSummary
	TotalItems int
}

// customerComparators is the closed set of sortable fields. Unknown sort
// keys are rejected instead of silently leaving the input order. String
// fields compare case-insensitively.
var customerComparators = map[string]func(a, b *models.CustomerSummary) int{
	"id":     func(a, b *models.CustomerSummary) int { return compareFold(a.ID, b.ID) },
	"name":   func(a, b *models.CustomerSummary) int { return compareFold(a.Name, b.Name) },
	"email":  func(a, b *models.CustomerSummary) int { return compareFold(a.Email, b.Email) },
	"status": func(a, b *models.CustomerSummary) int { return compareFold(a.Status, b.Status) },
	"revenue": func(a, b *models.CustomerSummary) int {
		return compareFloat(a.Revenue, b.Revenue)
	},
	"orderCount": func(a, b *models.CustomerSummary) int {
		return compareFloat(float64(a.OrderCount), float64(b.OrderCount))
	},
	"lastOrderDate": func(a, b *models.CustomerSummary) int {
		// absence is handled before the comparator runs
		if a.LastOrderDate.Equal(*b.LastOrderDate) {
			return 0
		}
		if a.LastOrderDate.Before(*b.LastOrderDate) {
			return -1
		}
		return 1
	},
}

// SortableFields lists the accepted sortBy values.
func SortableFields() []string {
	fields := make([]string, 0, len(customerComparators))
	for f := range customerComparators {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// QueryService turns the store's snapshot into one page of summaries:
// filter, stable sort, paginate, project. It is stateless and idempotent
// per call.
type QueryService struct {
	store *CustomerStore
}

// NewQueryService creates a query service over the given store.
func NewQueryService(store *CustomerStore) *QueryService {
	return &QueryService{store: store}
}

// Query runs the pipeline for one page request.
func (s *QueryService) Query(p QueryParams) (*QueryResult, error) {
	if p.Page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidArgument, p.Page)
	}
	if p.Limit < 1 {
		return nil, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidArgument, p.Limit)
	}
	if p.Order != "asc" && p.Order != "desc" {
		return nil, fmt.Errorf("%w: order must be asc or desc, got %q", ErrInvalidArgument, p.Order)
	}
	cmp, ok := customerComparators[p.SortBy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sortBy %q (accepted: %s)",
			ErrInvalidArgument, p.SortBy, strings.Join(SortableFields(), ", "))
	}

	customers, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}

	// Filter: case-insensitive substring on name or email.
	search := strings.ToLower(p.Search)
	summaries := make([]models.CustomerSummary, 0, len(customers))
	for i := range customers {
		if search != "" &&
			!strings.Contains(strings.ToLower(customers[i].Name), search) &&
			!strings.Contains(strings.ToLower(customers[i].Email), search) {
			continue
		}
		summaries = append(summaries, customers[i].Summary())
	}

	// Stable sort so that ties keep insertion order and pagination stays
	// deterministic across repeated queries. An absent value sorts last
	// regardless of direction; only the comparison itself is inverted.
	desc := p.Order == "desc"
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := &summaries[i], &summaries[j]
		if p.SortBy == "lastOrderDate" {
			switch {
			case a.LastOrderDate == nil && b.LastOrderDate == nil:
				return false
			case a.LastOrderDate == nil:
				return false
			case b.LastOrderDate == nil:
				return true
			}
		}
		c := cmp(a, b)
		if desc {
			c = -c
		}
		return c < 0
	})

	total := len(summaries)
	start := (p.Page - 1) * p.Limit
	if start >= total {
		return &QueryResult{Items: []models.CustomerSummary{}, TotalItems: total}, nil
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return &QueryResult{Items: summaries[start:end], TotalItems: total}, nil
}
