package mapper

import "github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"

// AddItemRequest adds a catalog product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=0"`
}

// UpdateItemRequest sets a line quantity; zero or less removes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type CartItem struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"productId,omitempty"`
	Name            string  `json:"name"`
	Image           string  `json:"image,omitempty"`
	UnitPrice       float64 `json:"price"`
	AppliedPrice    float64 `json:"appliedPrice"`
	Quantity        int     `json:"quantity"`
	MaxStock        int     `json:"maxStock,omitempty"`
	WholesalePrice  float64 `json:"wholesalePrice,omitempty"`
	WholesaleMinQty int     `json:"wholesaleMinQty,omitempty"`
	LineTotal       float64 `json:"lineTotal"`
	Source          string  `json:"source"`
	ListID          string  `json:"listId,omitempty"`
	BesoinID        string  `json:"besoinId,omitempty"`
}

type Cart struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Total     float64    `json:"total"`
}

func FromDomainCart(c *domain.Cart) Cart {
	if c == nil {
		return Cart{Items: []CartItem{}}
	}
	totals := c.Totals()
	out := Cart{
		Items:     make([]CartItem, 0, len(c.Items)),
		ItemCount: totals.ItemCount,
		Total:     totals.Total.InexactFloat64(),
	}
	for _, item := range c.Items {
		out.Items = append(out.Items, CartItem{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Name:            item.Name,
			Image:           item.Image,
			UnitPrice:       item.UnitPrice.InexactFloat64(),
			AppliedPrice:    item.UnitPriceFor(item.Quantity).InexactFloat64(),
			Quantity:        item.Quantity,
			MaxStock:        item.MaxStock,
			WholesalePrice:  item.WholesalePrice.InexactFloat64(),
			WholesaleMinQty: item.WholesaleMinQty,
			LineTotal:       item.LineTotal().InexactFloat64(),
			Source:          string(item.Source),
			ListID:          item.ListID,
			BesoinID:        item.BesoinID,
		})
	}
	return out
}
