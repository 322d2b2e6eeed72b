package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCheckoutInput_FallsBackToItemID(t *testing.T) {
	total := 12.0
	req := CheckoutRequest{
		Items: []CheckoutItem{
			{ProductID: "p-1", ID: "ignored", Quantity: 1},
			{ID: " p-2 ", Quantity: 3},
		},
		Total:         &total,
		PaymentMethod: "Online Payment",
		CustomerInfo:  &CustomerInfo{Name: "Awa", Email: "awa@example.com"},
	}

	input := req.ToCheckoutInput("", "key-1")
	require.Len(t, input.Items, 2)
	assert.Equal(t, "p-1", input.Items[0].ProductID)
	assert.Equal(t, "p-2", input.Items[1].ProductID)
	assert.Equal(t, 3, input.Items[1].Quantity)
	assert.Equal(t, "Online Payment", input.PaymentMethod)
	assert.Equal(t, "key-1", input.IdempotencyKey)
	require.NotNil(t, input.Total)
	assert.Equal(t, "12", input.Total.String())
	assert.Equal(t, "awa@example.com", input.CustomerInfo.Email)
}
