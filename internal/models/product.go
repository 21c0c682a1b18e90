package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Publish lifecycle stages for a catalog entry.
const (
	StatusDraft         = "Draft"
	StatusPendingReview = "Pending Review"
	StatusPublished     = "Published"
	StatusArchived      = "Archived"
)

// PublishStatuses lists every valid publish status, in lifecycle order.
var PublishStatuses = []string{StatusDraft, StatusPendingReview, StatusPublished, StatusArchived}

// ValidPublishStatus reports whether s is one of the four lifecycle stages.
func ValidPublishStatus(s string) bool {
	for _, v := range PublishStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Product is a vendor-owned catalog entry. Purchasable configurations live
// in Variations; a product is visible to the public only when it is
// Published and active.
type Product struct {
	BaseModel
	Name             string         `gorm:"index" json:"name"`
	Brand            string         `json:"brand"`
	Category         string         `gorm:"index" json:"category"`
	SubCategory      string         `json:"subCategory"`
	HighlightHeading string         `json:"highlightHeading"`
	Slug             string         `gorm:"uniqueIndex" json:"slug"`
	VendorID         string         `json:"vendorId"`
	VendorName       string         `json:"vendorName"`
	AddedBy          string         `json:"addedBy"`
	VendorRating     float64        `json:"vendorRating"`
	PublishDate      time.Time      `json:"publishDate"`
	PublishStatus    string         `gorm:"default:Draft" json:"publishStatus"`
	IsActive         bool           `gorm:"default:true" json:"isActive"`
	IsSponsored      bool           `json:"isSponsored"`
	IsFeatured       bool           `json:"isFeatured"`
	IsPopular        bool           `json:"isPopular"`
	IsTrending       bool           `json:"isTrending"`
	SearchBoostScore float64        `json:"searchBoostScore"`
	TotalSales       int            `json:"totalSales"`
	WarrantyYears    int            `json:"warrantyYears"`
	ReturnPolicyDays int            `gorm:"default:7" json:"returnPolicyDays"`
	Keywords         pq.StringArray `gorm:"type:text[]" json:"keywords"`
	Tags             pq.StringArray `gorm:"type:text[]" json:"tags"`

	Variations        []Variation        `json:"variations,omitempty"`
	SuggestedProducts []SuggestedProduct `json:"suggestedProducts,omitempty"`
}

// Variation is one purchasable configuration of a product with its own
// catalog-unique SKU, stock, media and pricing. The slug is optional but
// unique when present; it stays NULL when absent so the index ignores it.
type Variation struct {
	BaseModel
	ProductID      uuid.UUID `gorm:"type:uuid;index" json:"productId"`
	Color          string    `json:"color"`
	Size           string    `json:"size"`
	Stock          int       `json:"stock"`
	SKU            string    `gorm:"uniqueIndex" json:"sku"`
	Slug           *string   `gorm:"uniqueIndex" json:"slug,omitempty"`
	IsActive       bool      `gorm:"default:true" json:"isActive"`
	InStock        bool      `gorm:"default:true" json:"inStock"`
	ProductRatings float64   `json:"productRatings"`
	Story          string    `json:"story,omitempty"`
	Details        string    `json:"details,omitempty"`
	StyleNote      string    `json:"styleNote,omitempty"`

	Prices         []VariationPrice `json:"price,omitempty"`
	Images         []VariationImage `json:"images,omitempty"`
	ProductColors  []ProductColor   `json:"productColors,omitempty"`
	Specifications []Specification  `json:"specifications,omitempty"`
	Reviews        []Review         `json:"reviews,omitempty"`
}

// VariationPrice is one price entry; the first entry (position 0) is the
// one validated and used for filtering and sorting.
type VariationPrice struct {
	BaseModel
	VariationID     uuid.UUID `gorm:"type:uuid;index" json:"-"`
	MRP             float64   `json:"mrp"`
	SellingPrice    float64   `json:"sellingPrice"`
	DiscountPercent float64   `json:"discountPercent"`
	Currency        string    `gorm:"default:INR" json:"currency"`
	Position        int       `json:"-"`
}

// VariationImage is a gallery image; at least one per variation is primary.
type VariationImage struct {
	BaseModel
	VariationID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	URL         string    `json:"url"`
	Alt         string    `json:"alt"`
	IsPrimary   bool      `json:"isPrimary"`
}

// ProductColor is a display color swatch; prime colors get display priority.
type ProductColor struct {
	BaseModel
	VariationID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Hex         string    `json:"hex"`
	IsPrime     bool      `json:"isPrime"`
}

// Specification is a key/value attribute of a variation.
type Specification struct {
	BaseModel
	VariationID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
}

// Review is a customer rating left on a variation.
type Review struct {
	BaseModel
	VariationID uuid.UUID  `gorm:"type:uuid;index" json:"-"`
	UserID      *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`
	Username    string     `json:"username"`
	Rating      int        `json:"rating"` // 1..5
	Comment     string     `json:"comment"`
	Date        time.Time  `json:"date"`
}

// SuggestedProduct links a product to a related one for cross-selling.
type SuggestedProduct struct {
	BaseModel
	ProductID          uuid.UUID `gorm:"type:uuid;index" json:"-"`
	SuggestedProductID uuid.UUID `gorm:"type:uuid;index" json:"suggestedProductId"`
}
