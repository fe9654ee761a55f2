package domain

// Product is one entry of the catalog as served by the backend. ID is kept
// as text so numeric and string identifiers render the same way.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Discount float64
}

// DisplayedPrice is the price net of discount. No rounding is applied and a
// discount larger than the price yields a negative value.
func (p Product) DisplayedPrice() float64 {
	return p.Price - p.Discount
}
