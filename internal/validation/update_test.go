package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bazaar/internal/apperr"
	"github.com/example/bazaar/internal/models"
)

type stubUniquenessChecker struct {
	skuTaken  bool
	slugTaken bool
	err       error
}

func (s *stubUniquenessChecker) SKUExistsExcluding(sku string, productID uuid.UUID) (bool, error) {
	return s.skuTaken, s.err
}

func (s *stubUniquenessChecker) SlugExistsExcluding(slug string, productID uuid.UUID) (bool, error) {
	return s.slugTaken, s.err
}

func existingProduct() *models.Product {
	return &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Shirt",
		Slug:      "shirt",
		Variations: []models.Variation{{
			SKU:    "S1",
			Prices: []models.VariationPrice{{MRP: 500, SellingPrice: 400}},
		}},
	}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestValidateProductUpdate_NoChanges(t *testing.T) {
	err := ValidateProductUpdate(existingProduct(), &ProductUpdate{}, &stubUniquenessChecker{})
	require.NoError(t, err)
}

func TestValidateProductUpdate_SKUCollision(t *testing.T) {
	upd := &ProductUpdate{SKU: strPtr("S2")}
	err := ValidateProductUpdate(existingProduct(), upd, &stubUniquenessChecker{skuTaken: true})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.EqualError(t, err, "SKU already in use by another product")
}

func TestValidateProductUpdate_SameSKUSkipsLookup(t *testing.T) {
	// Re-submitting the current SKU must not trip the collision check even
	// when the checker would report it taken.
	upd := &ProductUpdate{SKU: strPtr("S1")}
	err := ValidateProductUpdate(existingProduct(), upd, &stubUniquenessChecker{skuTaken: true})
	require.NoError(t, err)
}

func TestValidateProductUpdate_SlugCollision(t *testing.T) {
	upd := &ProductUpdate{Slug: strPtr("other-shirt")}
	err := ValidateProductUpdate(existingProduct(), upd, &stubUniquenessChecker{slugTaken: true})
	require.Error(t, err)
	assert.EqualError(t, err, "Slug already in use by another product")
}

func TestValidateProductUpdate_PriceMerging(t *testing.T) {
	tests := []struct {
		name    string
		price   *PriceUpdate
		wantErr bool
	}{
		{"selling only, below current mrp", &PriceUpdate{SellingPrice: floatPtr(450)}, false},
		{"selling only, above current mrp", &PriceUpdate{SellingPrice: floatPtr(600)}, true},
		{"mrp only, below current selling", &PriceUpdate{MRP: floatPtr(300)}, true},
		{"both, consistent", &PriceUpdate{MRP: floatPtr(700), SellingPrice: floatPtr(700)}, false},
		{"both, inconsistent", &PriceUpdate{MRP: floatPtr(100), SellingPrice: floatPtr(200)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upd := &ProductUpdate{Price: tt.price}
			err := ValidateProductUpdate(existingProduct(), upd, &stubUniquenessChecker{})
			if tt.wantErr {
				require.Error(t, err)
				assert.EqualError(t, err, "Selling price cannot be greater than MRP")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateProductUpdate_PublishStatus(t *testing.T) {
	for _, status := range models.PublishStatuses {
		upd := &ProductUpdate{PublishStatus: &status}
		require.NoError(t, ValidateProductUpdate(existingProduct(), upd, &stubUniquenessChecker{}))
	}

	bad := "Live"
	upd := &ProductUpdate{PublishStatus: &bad}
	err := ValidateProductUpdate(existingProduct(), upd, &stubUniquenessChecker{})
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid publishStatus. Must be one of: Draft, Pending Review, Published, Archived")
}

func TestValidateStatusOnly(t *testing.T) {
	for _, status := range models.PublishStatuses {
		require.NoError(t, ValidateStatusOnly(status))
	}

	for _, status := range []string{"", "draft", "Live"} {
		err := ValidateStatusOnly(status)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		assert.EqualError(t, err, "Invalid or missing publishStatus. Must be one of: Draft, Pending Review, Published, Archived")
	}
}
