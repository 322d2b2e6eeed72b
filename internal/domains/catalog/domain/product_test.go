package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct("p1", "", "Pen", dec("1"))
	require.ErrorIs(t, err, ErrEmptyStore)
	_, err = NewProduct("p1", "s1", " ", dec("1"))
	require.ErrorIs(t, err, ErrEmptyName)
	_, err = NewProduct("p1", "s1", "Pen", dec("0"))
	require.ErrorIs(t, err, ErrInvalidPrice)

	p, err := NewProduct("p1", "s1", "Pen", dec("2.50"))
	require.NoError(t, err)
	require.True(t, p.IsActive)
	require.ErrorIs(t, p.Reprice(dec("2"), dec("101")), ErrInvalidDiscount)
}

func TestUnitPriceFor_WholesaleTier(t *testing.T) {
	p, err := NewProduct("p1", "s1", "Notebook", dec("10"))
	require.NoError(t, err)
	require.NoError(t, p.Reprice(dec("10"), dec("20")))
	require.NoError(t, p.ConfigureWholesale(true, dec("6"), 10))

	require.True(t, dec("8").Equal(p.UnitPriceFor(1)))
	require.True(t, dec("8").Equal(p.UnitPriceFor(9)))
	require.True(t, dec("6").Equal(p.UnitPriceFor(10)))

	require.ErrorIs(t, p.ConfigureWholesale(true, dec("0"), 10), ErrInvalidWholesale)
	require.ErrorIs(t, p.ConfigureWholesale(true, dec("5"), 0), ErrInvalidWholesale)
	require.NoError(t, p.ConfigureWholesale(false, decimal.Zero, 0))
	require.True(t, dec("8").Equal(p.UnitPriceFor(50)))
}

func TestDecrement_NeverGoesNegative(t *testing.T) {
	p, err := NewProduct("p1", "s1", "Pen", dec("1"))
	require.NoError(t, err)
	require.NoError(t, p.SetStock(3))
	require.ErrorIs(t, p.Decrement(4), ErrInsufficientStock)
	require.Equal(t, 3, p.Stock)
	require.NoError(t, p.Decrement(3))
	require.Zero(t, p.Stock)
	require.NoError(t, p.Restore(2))
	require.Equal(t, 2, p.Stock)
	require.ErrorIs(t, p.SetStock(-1), ErrNegativeStock)
}

func TestAttributes_NormalizeDropsPlaceholder(t *testing.T) {
	attrs := Attributes{Brand: " Bic ", Color: "Undefined", Language: "undefined"}.Normalize()
	require.Equal(t, "Bic", attrs.Brand)
	require.Empty(t, attrs.Color)
	require.Empty(t, attrs.Language)
}

func TestImagesAndSlug(t *testing.T) {
	p, err := NewProduct("p1", "s1", "Pen", dec("1"))
	require.NoError(t, err)
	p.ReplaceImages([]string{" a.png ", ""})
	p.AddImage("a.png")
	p.AddImage("b.png")
	require.Equal(t, []string{"a.png", "b.png"}, p.Images)
	require.Equal(t, "a.png", p.PrimaryImage())

	cat, err := NewCategory("c1", "  Fournitures Scolaires & Art ")
	require.NoError(t, err)
	require.Equal(t, "fournitures-scolaires-art", cat.Slug)
}
