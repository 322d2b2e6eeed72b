package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application/types"
)

type normalizedProductInput struct {
	StoreID         string                 `json:"storeId"`
	Name            *string                `json:"name"`
	Description     *string                `json:"description"`
	Barcode         *string                `json:"barcode"`
	CategoryID      *string                `json:"categoryId"`
	Price           *string                `json:"price"`
	Discount        *string                `json:"discount"`
	IsWholesale     *bool                  `json:"isWholesale"`
	WholesalePrice  *string                `json:"wholesalePrice"`
	WholesaleMinQty *int                   `json:"wholesaleMinQty"`
	Stock           *int                   `json:"stock"`
	Images          *[]string              `json:"images"`
	Tags            *[]string              `json:"tags"`
	Attributes      *types.AttributesInput `json:"attributes"`
	IsActive        *bool                  `json:"isActive"`
}

// FingerprintCreateProduct hashes the create payload (excluding the idempotency key).
// Decimals are rendered canonically so 10 and 10.00 hash the same.
func FingerprintCreateProduct(input types.CreateProductInput) (string, error) {
	payload, err := json.Marshal(normalizeCreateProductInput(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeCreateProductInput(input types.CreateProductInput) normalizedProductInput {
	n := normalizedProductInput{
		StoreID:         input.StoreID,
		Name:            input.Name,
		Description:     input.Description,
		Barcode:         input.Barcode,
		CategoryID:      input.CategoryID,
		IsWholesale:     input.IsWholesale,
		WholesaleMinQty: input.WholesaleMinQty,
		Stock:           input.Stock,
		Images:          input.Images,
		Tags:            input.Tags,
		IsActive:        input.IsActive,
	}
	if input.Price != nil {
		s := input.Price.String()
		n.Price = &s
	}
	if input.Discount != nil {
		s := input.Discount.String()
		n.Discount = &s
	}
	if input.WholesalePrice != nil {
		s := input.WholesalePrice.String()
		n.WholesalePrice = &s
	}
	if input.Attributes != nil {
		attrs := input.Attributes.Normalize()
		n.Attributes = &attrs
	}
	return n
}
