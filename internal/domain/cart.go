package domain

// CartItem is one line of a user's cart.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is a user's current shopping cart.
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// Total returns the cart value.
func (c Cart) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
