package cart

// ProductRef identifies the product behind a cart line, with enough detail
// to render the line without a catalog lookup.
type ProductRef struct {
	ID        string
	Name      string
	Images    []string
	UnitPrice int64
}

// Line is one product entry in the cart. PriceAtTime is the unit price
// snapshotted when the product was added; later catalog price changes do
// not affect it.
type Line struct {
	Product     ProductRef
	Quantity    int
	PriceAtTime int64
}

// Cart is the client's view of the server-held cart. TotalPrice is always
// derived from the lines, never set independently.
type Cart struct {
	Items      []Line
	TotalPrice int64
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Subtotal folds quantity * price-at-add-time over all lines.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Items {
		total += int64(l.Quantity) * l.PriceAtTime
	}
	return total
}

// Quantity returns the quantity of the line for productID, 0 when absent.
func (c Cart) Quantity(productID string) int {
	for _, l := range c.Items {
		if l.Product.ID == productID {
			return l.Quantity
		}
	}
	return 0
}

// TotalQuantity sums line quantities, used for the cart badge.
func (c Cart) TotalQuantity() int {
	var n int
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

// clone copies the cart so callers cannot alias the engine's snapshot.
func (c Cart) clone() Cart {
	out := c
	out.Items = make([]Line, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// normalize drops any line at or below quantity zero and rederives the
// total. The server never sends such lines, but the floor invariant is
// enforced here rather than trusted.
func normalize(c Cart) Cart {
	items := make([]Line, 0, len(c.Items))
	for _, l := range c.Items {
		if l.Quantity >= 1 {
			items = append(items, l)
		}
	}
	c.Items = items
	c.TotalPrice = c.Subtotal()
	return c
}
