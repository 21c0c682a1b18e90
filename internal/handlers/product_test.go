package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bazaar/internal/apperr"
	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/validation"
)

func minimalInput() *validation.ProductInput {
	return &validation.ProductInput{
		Name:     "Classic Shirt",
		VendorID: "v1",
		Variations: []validation.VariationInput{{
			SKU:           "S1",
			Stock:         3,
			Prices:        []validation.PriceInput{{MRP: 500, SellingPrice: 400}},
			Images:        []validation.ImageInput{{URL: "x", IsPrimary: true}},
			ProductColors: []validation.ColorInput{{Hex: "#fff", IsPrime: true}},
		}},
	}
}

func TestProductFromInput_Defaults(t *testing.T) {
	product, err := productFromInput(minimalInput())
	require.NoError(t, err)

	assert.Equal(t, "classic-shirt", product.Slug, "slug derives from the name when absent")
	assert.Equal(t, models.StatusDraft, product.PublishStatus)
	assert.True(t, product.IsActive)
	assert.Equal(t, 7, product.ReturnPolicyDays)

	require.Len(t, product.Variations, 1)
	v := product.Variations[0]
	assert.True(t, v.IsActive)
	assert.True(t, v.InStock)
	require.Len(t, v.Prices, 1)
	assert.Equal(t, "INR", v.Prices[0].Currency)
	assert.Equal(t, 0, v.Prices[0].Position)
}

func TestProductFromInput_ExplicitValuesWin(t *testing.T) {
	input := minimalInput()
	input.Slug = "custom-slug"
	input.PublishStatus = models.StatusPublished
	inactive := false
	input.IsActive = &inactive
	days := 30
	input.ReturnPolicyDays = &days
	input.Variations[0].Prices[0].Currency = "USD"

	product, err := productFromInput(input)
	require.NoError(t, err)

	assert.Equal(t, "custom-slug", product.Slug)
	assert.Equal(t, models.StatusPublished, product.PublishStatus)
	assert.False(t, product.IsActive)
	assert.Equal(t, 30, product.ReturnPolicyDays)
	assert.Equal(t, "USD", product.Variations[0].Prices[0].Currency)
}

func TestProductFromInput_PricePositionsFollowPayloadOrder(t *testing.T) {
	input := minimalInput()
	input.Variations[0].Prices = append(input.Variations[0].Prices,
		validation.PriceInput{MRP: 600, SellingPrice: 550})

	product, err := productFromInput(input)
	require.NoError(t, err)

	prices := product.Variations[0].Prices
	require.Len(t, prices, 2)
	assert.Equal(t, 0, prices[0].Position)
	assert.Equal(t, 1, prices[1].Position)
}

func TestProductFromInput_InvalidPublishStatus(t *testing.T) {
	input := minimalInput()
	input.PublishStatus = "Live"

	_, err := productFromInput(input)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestProductFromInput_VariationSlug(t *testing.T) {
	product, err := productFromInput(minimalInput())
	require.NoError(t, err)
	assert.Nil(t, product.Variations[0].Slug, "absent slugs stay NULL so the unique index ignores them")

	input := minimalInput()
	input.Variations[0].Slug = "classic-shirt-red"
	product, err = productFromInput(input)
	require.NoError(t, err)
	require.NotNil(t, product.Variations[0].Slug)
	assert.Equal(t, "classic-shirt-red", *product.Variations[0].Slug)
}

func TestProductFromInput_SuggestedProducts(t *testing.T) {
	input := minimalInput()
	related := uuid.New()
	input.SuggestedIDs = []string{related.String(), ""}

	product, err := productFromInput(input)
	require.NoError(t, err)
	require.Len(t, product.SuggestedProducts, 1)
	assert.Equal(t, related, product.SuggestedProducts[0].SuggestedProductID)

	input.SuggestedIDs = []string{"not-a-uuid"}
	_, err = productFromInput(input)
	require.Error(t, err)
}
