package validation

import (
	"strings"

	"github.com/example/bazaar/internal/apperr"
	"github.com/example/bazaar/internal/models"
)

// ProductUpdate is a partial update payload. Pointer fields distinguish
// "absent" from "set to the zero value".
type ProductUpdate struct {
	Name             *string      `json:"name"`
	Brand            *string      `json:"brand"`
	Category         *string      `json:"category"`
	SubCategory      *string      `json:"subCategory"`
	HighlightHeading *string      `json:"highlightHeading"`
	Slug             *string      `json:"slug"`
	SKU              *string      `json:"sku"`
	VendorName       *string      `json:"vendorName"`
	PublishStatus    *string      `json:"publishStatus"`
	IsActive         *bool        `json:"isActive"`
	IsSponsored      *bool        `json:"isSponsored"`
	IsFeatured       *bool        `json:"isFeatured"`
	IsPopular        *bool        `json:"isPopular"`
	IsTrending       *bool        `json:"isTrending"`
	SearchBoostScore *float64     `json:"searchBoostScore"`
	WarrantyYears    *int         `json:"warrantyYears"`
	ReturnPolicyDays *int         `json:"returnPolicyDays"`
	Keywords         []string     `json:"keywords"`
	Tags             []string     `json:"tags"`
	Price            *PriceUpdate `json:"price"`
}

// PriceUpdate is a partial price payload; absent fields fall back to the
// product's current first price entry.
type PriceUpdate struct {
	MRP          *float64 `json:"mrp"`
	SellingPrice *float64 `json:"sellingPrice"`
}

// ValidateProductUpdate enforces the update-time rules against an existing
// product: slug/SKU uniqueness excluding the product itself, price
// consistency after merging with current values, and the status enum.
func ValidateProductUpdate(existing *models.Product, upd *ProductUpdate, checker UniquenessChecker) error {
	if upd.SKU != nil && *upd.SKU != currentSKU(existing) {
		exists, err := checker.SKUExistsExcluding(*upd.SKU, existing.ID)
		if err != nil {
			return apperr.Internal("failed to check SKU uniqueness", err)
		}
		if exists {
			return apperr.Conflict("SKU already in use by another product")
		}
	}

	if upd.Slug != nil && *upd.Slug != existing.Slug {
		exists, err := checker.SlugExistsExcluding(*upd.Slug, existing.ID)
		if err != nil {
			return apperr.Internal("failed to check slug uniqueness", err)
		}
		if exists {
			return apperr.Conflict("Slug already in use by another product")
		}
	}

	if upd.Price != nil {
		mrp, sellingPrice := currentPrice(existing)
		if upd.Price.MRP != nil {
			mrp = *upd.Price.MRP
		}
		if upd.Price.SellingPrice != nil {
			sellingPrice = *upd.Price.SellingPrice
		}
		if sellingPrice > mrp {
			return apperr.Validation("Selling price cannot be greater than MRP")
		}
	}

	if upd.PublishStatus != nil && !models.ValidPublishStatus(*upd.PublishStatus) {
		return apperr.Validationf("Invalid publishStatus. Must be one of: %s",
			strings.Join(models.PublishStatuses, ", "))
	}

	return nil
}

// ValidateStatusOnly enforces the publish-status enum for the status-only
// update endpoint, where a missing value is also rejected.
func ValidateStatusOnly(status string) error {
	if status == "" || !models.ValidPublishStatus(status) {
		return apperr.Validationf("Invalid or missing publishStatus. Must be one of: %s",
			strings.Join(models.PublishStatuses, ", "))
	}
	return nil
}

func currentSKU(p *models.Product) string {
	if len(p.Variations) > 0 {
		return p.Variations[0].SKU
	}
	return ""
}

func currentPrice(p *models.Product) (mrp, sellingPrice float64) {
	if len(p.Variations) > 0 && len(p.Variations[0].Prices) > 0 {
		first := p.Variations[0].Prices[0]
		return first.MRP, first.SellingPrice
	}
	return 0, 0
}
