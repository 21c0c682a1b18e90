// Package validation holds the business-rule checks for product payloads.
// Create-time rules are evaluated fail-fast in a fixed order; callers see
// the first violated rule's message.
package validation

import (
	"github.com/google/uuid"

	"github.com/example/bazaar/internal/apperr"
)

// SKUChecker answers catalog-wide SKU existence lookups.
type SKUChecker interface {
	SKUExists(sku string) (bool, error)
}

// UniquenessChecker answers update-time uniqueness lookups that must
// exclude the product being updated.
type UniquenessChecker interface {
	SKUExistsExcluding(sku string, productID uuid.UUID) (bool, error)
	SlugExistsExcluding(slug string, productID uuid.UUID) (bool, error)
}

// ProductInput is a candidate product payload.
type ProductInput struct {
	Name             string           `json:"name"`
	Brand            string           `json:"brand"`
	Category         string           `json:"category"`
	SubCategory      string           `json:"subCategory"`
	HighlightHeading string           `json:"highlightHeading"`
	Slug             string           `json:"slug"`
	VendorID         string           `json:"vendorId"`
	VendorName       string           `json:"vendorName"`
	AddedBy          string           `json:"addedBy"`
	VendorRating     float64          `json:"vendorRating"`
	PublishStatus    string           `json:"publishStatus"`
	IsActive         *bool            `json:"isActive"`
	IsSponsored      bool             `json:"isSponsored"`
	IsFeatured       bool             `json:"isFeatured"`
	IsPopular        bool             `json:"isPopular"`
	IsTrending       bool             `json:"isTrending"`
	SearchBoostScore float64          `json:"searchBoostScore"`
	TotalSales       int              `json:"totalSales"`
	WarrantyYears    int              `json:"warrantyYears"`
	ReturnPolicyDays *int             `json:"returnPolicyDays"`
	Keywords         []string         `json:"keywords"`
	Tags             []string         `json:"tags"`
	Variations       []VariationInput `json:"variations"`
	SuggestedIDs     []string         `json:"suggestedProducts"`
}

// VariationInput is one purchasable configuration in a product payload.
type VariationInput struct {
	Color          string               `json:"color"`
	Size           string               `json:"size"`
	Stock          int                  `json:"stock"`
	SKU            string               `json:"sku"`
	Slug           string               `json:"slug"`
	IsActive       *bool                `json:"isActive"`
	InStock        *bool                `json:"inStock"`
	ProductRatings float64              `json:"productRatings"`
	Description    DescriptionInput     `json:"description"`
	Prices         []PriceInput         `json:"price"`
	Images         []ImageInput         `json:"images"`
	ProductColors  []ColorInput         `json:"productColors"`
	Specifications []SpecificationInput `json:"specifications"`
}

// DescriptionInput carries the narrative fields of a variation.
type DescriptionInput struct {
	Story     string `json:"story"`
	Details   string `json:"details"`
	StyleNote string `json:"styleNote"`
}

// PriceInput is one price entry. Zero values are treated as missing, so a
// literal zero MRP or selling price is rejected as absent.
type PriceInput struct {
	MRP             float64 `json:"mrp"`
	SellingPrice    float64 `json:"sellingPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	Currency        string  `json:"currency"`
}

// ImageInput is one gallery image entry.
type ImageInput struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

// ColorInput is one display color swatch.
type ColorInput struct {
	Hex     string `json:"hex"`
	IsPrime bool   `json:"isPrime"`
}

// SpecificationInput is one key/value attribute.
type SpecificationInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ValidateNewProduct runs the create-time rule chain and returns the first
// violated rule as a validation or conflict error. SKU lookups run one
// variation at a time, in payload order. The prime-color rule is checked
// once across all variations, after the per-variation loop.
func ValidateNewProduct(in *ProductInput, skus SKUChecker) error {
	if in.Name == "" {
		return apperr.Validation("Product name is required")
	}

	if in.VendorID == "" {
		return apperr.Validation("Vendor ID is required")
	}

	if len(in.Variations) == 0 {
		return apperr.Validation("At least one variation is required")
	}

	for _, v := range in.Variations {
		if v.SKU == "" {
			return apperr.Validation("SKU is required in each variation")
		}

		exists, err := skus.SKUExists(v.SKU)
		if err != nil {
			return apperr.Internal("failed to check SKU uniqueness", err)
		}
		if exists {
			return apperr.Conflictf("SKU already exists: %s", v.SKU)
		}

		if len(v.Prices) == 0 {
			return apperr.Validation("Each variation must have a price array with at least 1 price object")
		}

		p := v.Prices[0]

		if p.MRP == 0 {
			return apperr.Validation("MRP is required in variation price")
		}

		if p.SellingPrice == 0 {
			return apperr.Validation("Selling price is required in variation price")
		}

		if p.SellingPrice > p.MRP {
			return apperr.Validation("Selling price cannot be greater than MRP")
		}

		if len(v.Images) == 0 {
			return apperr.Validation("Each variation must contain images")
		}

		hasPrimary := false
		for _, img := range v.Images {
			if img.IsPrimary {
				hasPrimary = true
				break
			}
		}
		if !hasPrimary {
			return apperr.Validation("Each variation must have at least one primary image")
		}

		if len(v.ProductColors) == 0 {
			return apperr.Validation("Each variation must have product colors")
		}
	}

	hasPrimeColor := false
	for _, v := range in.Variations {
		for _, color := range v.ProductColors {
			if color.IsPrime {
				hasPrimeColor = true
				break
			}
		}
	}
	if !hasPrimeColor {
		return apperr.Validation("At least one product color must be marked as prime across all variations")
	}

	return nil
}
