package models

// CartLine is one row in a buyer's cart. Product fields are snapshotted at
// add-time, not live-linked; CartID is the line identity.
type CartLine struct {
	CartID    string  `json:"cart_id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	Price     float64 `json:"price"`
	MOQ       int     `json:"moq"`
	Color     string  `json:"color"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// RoundToMOQ rounds a requested quantity up to the nearest positive multiple
// of moq, never below one full MOQ unit. Wholesale lines must always be in
// MOQ-aligned bulk units; rounding down or to zero would drop a line below
// minimum economics.
func RoundToMOQ(requested, moq int) int {
	if moq < 1 {
		moq = 1
	}
	if requested < 1 {
		return moq
	}
	qty := ((requested + moq - 1) / moq) * moq
	if qty < moq {
		qty = moq
	}
	return qty
}

// CartTotal sums price*quantity over all lines
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// CartItemCount sums quantities over all lines
func CartItemCount(lines []CartLine) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// AddToCartRequest adds requested pieces of a product to the cart; the
// quantity is rounded up to the product's MOQ before storing.
type AddToCartRequest struct {
	ProductID int    `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
	Color     string `json:"color"`
}

// UpdateCartQuantityRequest sets an absolute target quantity for a line
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}
