package domain

// CartLine represents a single line in the cart. The product fields are a
// snapshot taken when the line was created; later catalog edits do not
// propagate into existing lines.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart represents a per-session shopping cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
}

// Total calculates the total price of all lines in the cart.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Product.Price * int64(line.Quantity)
	}
	return total
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// FindLineIndex returns the index of the line holding the given product ID,
// or -1 if no such line exists.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// ProductIDs returns the distinct product IDs present in the cart, in line order.
func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.Product.ID)
	}
	return ids
}
