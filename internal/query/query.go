// Package query builds the product list filter/sort/pagination
// specification from request parameters and the caller's role.
package query

import (
	"net/url"
	"strconv"

	"gorm.io/gorm"

	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/utils"
)

// Sort values recognized by the product listing. Anything else falls back
// to the store's default order.
const (
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortNewest    = "newest"
	SortRating    = "rating"
)

// firstPriceExpr selects the lowest first-entry selling price across a
// product's variations, for price sorting.
const firstPriceExpr = "(SELECT MIN(vp.selling_price) FROM variations v JOIN variation_prices vp ON vp.variation_id = v.id WHERE v.product_id = products.id)"

// ratingExpr selects the best variation rating for rating sorting.
const ratingExpr = "(SELECT MAX(v.product_ratings) FROM variations v WHERE v.product_id = products.id)"

// ProductQuery is a resolved listing specification.
type ProductQuery struct {
	Category      string
	Brand         string
	Search        string
	Sort          string
	MinPrice      *float64
	MaxPrice      *float64
	PublishStatus string // admin-only explicit status filter; empty means all
	PublishedOnly bool   // forced for the public role
	Page          utils.Pagination
}

// FromValues resolves query parameters and the caller's role into a
// ProductQuery. Public callers always get the Published+active forcing;
// their publishStatus parameter is ignored.
func FromValues(values url.Values, role string) ProductQuery {
	q := ProductQuery{
		Category: values.Get("category"),
		Brand:    values.Get("brand"),
		Search:   values.Get("search"),
		Sort:     normalizeSort(values.Get("sort")),
		MinPrice: parseFloat(values.Get("minPrice")),
		MaxPrice: parseFloat(values.Get("maxPrice")),
		Page:     utils.NewPagination(values.Get("page"), values.Get("limit")),
	}

	if role == models.RoleAdmin {
		if status := values.Get("publishStatus"); status != "" {
			q.PublishStatus = status
		}
	} else {
		q.PublishedOnly = true
	}

	return q
}

// Apply attaches the specification's filters, ordering and pagination to a
// products query.
func (q ProductQuery) Apply(db *gorm.DB) *gorm.DB {
	if q.PublishedOnly {
		db = db.Where("publish_status = ? AND is_active = ?", models.StatusPublished, true)
	} else if q.PublishStatus != "" {
		db = db.Where("publish_status = ?", q.PublishStatus)
	}

	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if q.Brand != "" {
		db = db.Where("brand = ?", q.Brand)
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		cond := "EXISTS (SELECT 1 FROM variations v JOIN variation_prices vp ON vp.variation_id = v.id WHERE v.product_id = products.id"
		args := make([]interface{}, 0, 2)
		if q.MinPrice != nil {
			cond += " AND vp.selling_price >= ?"
			args = append(args, *q.MinPrice)
		}
		if q.MaxPrice != nil {
			cond += " AND vp.selling_price <= ?"
			args = append(args, *q.MaxPrice)
		}
		cond += ")"
		db = db.Where(cond, args...)
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		db = db.Where(
			"name ILIKE ? OR brand ILIKE ? OR category ILIKE ? OR vendor_name ILIKE ? OR array_to_string(keywords, ' ') ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	switch q.Sort {
	case SortPriceLow:
		db = db.Order(firstPriceExpr + " ASC")
	case SortPriceHigh:
		db = db.Order(firstPriceExpr + " DESC")
	case SortNewest:
		db = db.Order("created_at DESC")
	case SortRating:
		db = db.Order(ratingExpr + " DESC")
	}

	return db.Limit(q.Page.Limit).Offset(q.Page.Offset)
}

func normalizeSort(sort string) string {
	switch sort {
	case SortPriceLow, SortPriceHigh, SortNewest, SortRating:
		return sort
	default:
		return ""
	}
}

func parseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
