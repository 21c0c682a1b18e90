package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/bazaar/internal/apperr"
	"github.com/example/bazaar/internal/middleware"
	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/query"
	"github.com/example/bazaar/internal/utils"
	"github.com/example/bazaar/internal/validation"
)

// ProductHandler manages catalog CRUD and the status endpoint.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// SKUExists reports whether any variation in the catalog uses the SKU.
func (h *ProductHandler) SKUExists(sku string) (bool, error) {
	var count int64
	err := h.db.Model(&models.Variation{}).Where("sku = ?", sku).Count(&count).Error
	return count > 0, err
}

// SKUExistsExcluding reports whether the SKU is used by a variation of any
// other product.
func (h *ProductHandler) SKUExistsExcluding(sku string, productID uuid.UUID) (bool, error) {
	var count int64
	err := h.db.Model(&models.Variation{}).
		Where("sku = ? AND product_id <> ?", sku, productID).
		Count(&count).Error
	return count > 0, err
}

// SlugExistsExcluding reports whether the slug belongs to another product.
func (h *ProductHandler) SlugExistsExcluding(slug string, productID uuid.UUID) (bool, error) {
	var count int64
	err := h.db.Model(&models.Product{}).
		Where("slug = ? AND id <> ?", slug, productID).
		Count(&count).Error
	return count > 0, err
}

// ListProducts returns one page of products matching the caller's filters,
// with public callers restricted to published active entries. The reported
// total is the size of the returned page.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	role := middleware.ResolveRole(c)
	listQuery := query.FromValues(queryValues(c), role)

	var products []models.Product
	if err := listQuery.Apply(h.db.Model(&models.Product{})).
		Preload("Variations").
		Preload("Variations.Prices", priceOrder).
		Preload("Variations.Images").
		Preload("Variations.ProductColors").
		Find(&products).Error; err != nil {
		return apperr.Internal("failed to list products", err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "OK",
		"products": products,
		"total":    len(products),
	})
}

// GetProductBySlug loads a single product with its full nested aggregate.
// Public callers only see published active products.
func (h *ProductHandler) GetProductBySlug(c *fiber.Ctx) error {
	role := middleware.ResolveRole(c)
	slug := c.Params("slug")

	db := h.db.Where("slug = ?", slug)
	if role != models.RoleAdmin {
		db = db.Where("publish_status = ? AND is_active = ?", models.StatusPublished, true)
	}

	var product models.Product
	if err := db.
		Preload("Variations").
		Preload("Variations.Prices", priceOrder).
		Preload("Variations.Images").
		Preload("Variations.ProductColors").
		Preload("Variations.Specifications").
		Preload("Variations.Reviews").
		Preload("SuggestedProducts").
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return apperr.Internal("failed to load product", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "OK", "product": product})
}

// CreateProduct validates and persists a new catalog entry. The rule chain
// fails fast; nothing is written before every rule passes. A unique-index
// rejection at save time is still possible and surfaces as a conflict.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input validation.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := validation.ValidateNewProduct(&input, h); err != nil {
		return err
	}

	product, err := productFromInput(&input)
	if err != nil {
		return err
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	}); err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("duplicate key value violates a unique constraint")
		}
		return apperr.Internal("failed to create product", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct applies a partial update after the uniqueness, price and
// status checks, and returns the updated entity.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("Product not found")
	}

	var existing models.Product
	if err := h.db.
		Preload("Variations").
		Preload("Variations.Prices", priceOrder).
		First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return apperr.Internal("failed to load product", err)
	}

	var upd validation.ProductUpdate
	if err := c.BodyParser(&upd); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := validation.ValidateProductUpdate(&existing, &upd, h); err != nil {
		return err
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return h.applyUpdate(tx, &existing, &upd)
	}); err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("duplicate key value violates a unique constraint")
		}
		return apperr.Internal("failed to update product", err)
	}

	var updated models.Product
	if err := h.db.
		Preload("Variations").
		Preload("Variations.Prices", priceOrder).
		Preload("Variations.Images").
		Preload("Variations.ProductColors").
		First(&updated, "id = ?", existing.ID).Error; err != nil {
		return apperr.Internal("failed to reload product", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product updated", "updated": updated})
}

// DeleteProduct removes a product and its nested documents.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("Product not found")
	}

	var product models.Product
	if err := h.db.Preload("Variations").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return apperr.Internal("failed to load product", err)
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		variationIDs := make([]uuid.UUID, 0, len(product.Variations))
		for _, v := range product.Variations {
			variationIDs = append(variationIDs, v.ID)
		}

		if len(variationIDs) > 0 {
			children := []interface{}{
				&models.VariationPrice{},
				&models.VariationImage{},
				&models.ProductColor{},
				&models.Specification{},
				&models.Review{},
			}
			for _, child := range children {
				if err := tx.Where("variation_id IN ?", variationIDs).Delete(child).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.Variation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.SuggestedProduct{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Product{}, "id = ?", id).Error
	}); err != nil {
		return apperr.Internal("failed to delete product", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product removed"})
}

// UpdateProductStatus changes only the publish status and returns a
// minimal projection of the product.
func (h *ProductHandler) UpdateProductStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("Product not found")
	}

	var body struct {
		PublishStatus string `json:"publishStatus"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := validation.ValidateStatusOnly(body.PublishStatus); err != nil {
		return err
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return apperr.Internal("failed to load product", err)
	}

	if err := h.db.Model(&product).Update("publish_status", body.PublishStatus).Error; err != nil {
		return apperr.Internal("failed to update product status", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Product status updated to '%s'", body.PublishStatus),
		"updatedProduct": fiber.Map{
			"id":            product.ID,
			"name":          product.Name,
			"publishStatus": body.PublishStatus,
			"updatedAt":     product.UpdatedAt,
		},
	})
}

// applyUpdate writes the fields present in the payload. The SKU and price
// fields address the product's first variation, which is the one the
// update-time checks validated against.
func (h *ProductHandler) applyUpdate(tx *gorm.DB, existing *models.Product, upd *validation.ProductUpdate) error {
	updates := map[string]interface{}{}
	setString := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setBool := func(column string, value *bool) {
		if value != nil {
			updates[column] = *value
		}
	}

	setString("name", upd.Name)
	setString("brand", upd.Brand)
	setString("category", upd.Category)
	setString("sub_category", upd.SubCategory)
	setString("highlight_heading", upd.HighlightHeading)
	setString("slug", upd.Slug)
	setString("vendor_name", upd.VendorName)
	setString("publish_status", upd.PublishStatus)
	setBool("is_active", upd.IsActive)
	setBool("is_sponsored", upd.IsSponsored)
	setBool("is_featured", upd.IsFeatured)
	setBool("is_popular", upd.IsPopular)
	setBool("is_trending", upd.IsTrending)
	if upd.SearchBoostScore != nil {
		updates["search_boost_score"] = *upd.SearchBoostScore
	}
	if upd.WarrantyYears != nil {
		updates["warranty_years"] = *upd.WarrantyYears
	}
	if upd.ReturnPolicyDays != nil {
		updates["return_policy_days"] = *upd.ReturnPolicyDays
	}
	if upd.Keywords != nil {
		updates["keywords"] = pqStringArray(upd.Keywords)
	}
	if upd.Tags != nil {
		updates["tags"] = pqStringArray(upd.Tags)
	}

	if len(updates) > 0 {
		if err := tx.Model(existing).Updates(updates).Error; err != nil {
			return err
		}
	}

	if upd.SKU != nil && len(existing.Variations) > 0 {
		if err := tx.Model(&existing.Variations[0]).Update("sku", *upd.SKU).Error; err != nil {
			return err
		}
	}

	if upd.Price != nil && len(existing.Variations) > 0 && len(existing.Variations[0].Prices) > 0 {
		first := &existing.Variations[0].Prices[0]
		priceUpdates := map[string]interface{}{}
		if upd.Price.MRP != nil {
			priceUpdates["mrp"] = *upd.Price.MRP
		}
		if upd.Price.SellingPrice != nil {
			priceUpdates["selling_price"] = *upd.Price.SellingPrice
		}
		if len(priceUpdates) > 0 {
			if err := tx.Model(first).Updates(priceUpdates).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// productFromInput maps a validated payload onto the persistence model,
// filling the defaults the document schema used to apply.
func productFromInput(in *validation.ProductInput) (*models.Product, error) {
	if in.PublishStatus != "" && !models.ValidPublishStatus(in.PublishStatus) {
		return nil, apperr.Validationf("Invalid publishStatus. Must be one of: %s",
			strings.Join(models.PublishStatuses, ", "))
	}

	product := &models.Product{
		Name:             in.Name,
		Brand:            in.Brand,
		Category:         in.Category,
		SubCategory:      in.SubCategory,
		HighlightHeading: in.HighlightHeading,
		Slug:             in.Slug,
		VendorID:         in.VendorID,
		VendorName:       in.VendorName,
		AddedBy:          in.AddedBy,
		VendorRating:     in.VendorRating,
		PublishDate:      time.Now(),
		PublishStatus:    in.PublishStatus,
		IsActive:         true,
		IsSponsored:      in.IsSponsored,
		IsFeatured:       in.IsFeatured,
		IsPopular:        in.IsPopular,
		IsTrending:       in.IsTrending,
		SearchBoostScore: in.SearchBoostScore,
		TotalSales:       in.TotalSales,
		WarrantyYears:    in.WarrantyYears,
		ReturnPolicyDays: 7,
		Keywords:         pqStringArray(in.Keywords),
		Tags:             pqStringArray(in.Tags),
	}

	if product.Slug == "" {
		product.Slug = utils.Slugify(in.Name)
	}
	if product.PublishStatus == "" {
		product.PublishStatus = models.StatusDraft
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.ReturnPolicyDays != nil {
		product.ReturnPolicyDays = *in.ReturnPolicyDays
	}

	for _, id := range in.SuggestedIDs {
		if id == "" {
			continue
		}
		suggestedID, err := uuid.Parse(id)
		if err != nil {
			return nil, apperr.Validation("invalid suggestedProducts value")
		}
		product.SuggestedProducts = append(product.SuggestedProducts, models.SuggestedProduct{
			SuggestedProductID: suggestedID,
		})
	}

	for _, v := range in.Variations {
		variation := models.Variation{
			Color:          v.Color,
			Size:           v.Size,
			Stock:          v.Stock,
			SKU:            v.SKU,
			IsActive:       true,
			InStock:        true,
			ProductRatings: v.ProductRatings,
			Story:          v.Description.Story,
			Details:        v.Description.Details,
			StyleNote:      v.Description.StyleNote,
		}
		if v.Slug != "" {
			slug := v.Slug
			variation.Slug = &slug
		}
		if v.IsActive != nil {
			variation.IsActive = *v.IsActive
		}
		if v.InStock != nil {
			variation.InStock = *v.InStock
		}

		for i, p := range v.Prices {
			currency := p.Currency
			if currency == "" {
				currency = "INR"
			}
			variation.Prices = append(variation.Prices, models.VariationPrice{
				MRP:             p.MRP,
				SellingPrice:    p.SellingPrice,
				DiscountPercent: p.DiscountPercent,
				Currency:        currency,
				Position:        i,
			})
		}

		for _, img := range v.Images {
			variation.Images = append(variation.Images, models.VariationImage{
				URL:       img.URL,
				Alt:       img.Alt,
				IsPrimary: img.IsPrimary,
			})
		}

		for _, color := range v.ProductColors {
			variation.ProductColors = append(variation.ProductColors, models.ProductColor{
				Hex:     color.Hex,
				IsPrime: color.IsPrime,
			})
		}

		for _, spec := range v.Specifications {
			variation.Specifications = append(variation.Specifications, models.Specification{
				Key:   spec.Key,
				Value: spec.Value,
			})
		}

		product.Variations = append(product.Variations, variation)
	}

	return product, nil
}

func priceOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func pqStringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}

func queryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}
