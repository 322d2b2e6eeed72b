package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func pen(qty, stock int) Item {
	return Item{
		ProductID:       "pen",
		Name:            "Pen",
		UnitPrice:       decimal.RequireFromString("1.50"),
		Quantity:        qty,
		MaxStock:        stock,
		WholesalePrice:  decimal.RequireFromString("1.00"),
		WholesaleMinQty: 10,
	}
}

func TestAddProductMergesQuantities(t *testing.T) {
	c, err := New("user-1")
	require.NoError(t, err)

	require.NoError(t, c.AddProduct(pen(2, 5), now))
	require.NoError(t, c.AddProduct(pen(3, 5), now))

	require.Len(t, c.Items, 1)
	assert.Equal(t, "pen", c.Items[0].ID)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, SourceProduct, c.Items[0].Source)
}

func TestAddProductRejectsMergedQuantityAboveStock(t *testing.T) {
	c, _ := New("user-1")
	require.NoError(t, c.AddProduct(pen(4, 5), now))

	err := c.AddProduct(pen(2, 5), now)
	require.ErrorIs(t, err, ErrExceedsStock)
	var limit *StockLimitError
	require.True(t, errors.As(err, &limit))
	assert.Equal(t, 5, limit.Available)
	assert.Equal(t, 6, limit.Requested)
	assert.Equal(t, 4, c.Items[0].Quantity)
}

func TestAddSchoolLineIncrements(t *testing.T) {
	c, _ := New("token-1")
	line := Item{ID: SchoolListItemID("l1", "b1"), Name: "Cahier", UnitPrice: decimal.NewFromInt(5), Quantity: 2}

	c.AddSchoolLine(line, now)
	c.AddSchoolLine(line, now)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "liste-l1-besoin-b1", c.Items[0].ID)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, SourceSchoolList, c.Items[0].Source)
}

func TestSetQuantity(t *testing.T) {
	c, _ := New("user-1")
	require.NoError(t, c.AddProduct(pen(1, 5), now))

	require.NoError(t, c.SetQuantity("pen", 50, now))
	assert.Equal(t, 5, c.Items[0].Quantity)

	require.NoError(t, c.SetQuantity("pen", 0, now))
	assert.Empty(t, c.Items)

	assert.ErrorIs(t, c.SetQuantity("pen", 1, now), ErrItemNotFound)
}

func TestSchoolLinesAreNotStockBound(t *testing.T) {
	c, _ := New("user-1")
	c.AddSchoolLine(Item{ID: "liste-l1-besoin-b1", UnitPrice: decimal.NewFromInt(5), Quantity: 1}, now)

	require.NoError(t, c.SetQuantity("liste-l1-besoin-b1", 30, now))
	assert.Equal(t, 30, c.Items[0].Quantity)
}

func TestTotalsApplyWholesale(t *testing.T) {
	c, _ := New("user-1")
	require.NoError(t, c.AddProduct(pen(10, 20), now))
	c.AddSchoolLine(Item{ID: "liste-l1-besoin-b1", UnitPrice: decimal.NewFromInt(5), Quantity: 2}, now)

	totals := c.Totals()
	assert.Equal(t, 12, totals.ItemCount)
	assert.True(t, decimal.NewFromInt(20).Equal(totals.Total), totals.Total.String())
}

func TestNewRequiresOwner(t *testing.T) {
	_, err := New("  ")
	assert.ErrorIs(t, err, ErrEmptyOwner)
}
