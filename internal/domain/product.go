package domain

// Unit is a unit of measure for a product. Factor converts one of this
// unit into base units; exactly one unit per product has IsBase set
// (its factor is 1 by definition).
type Unit struct {
	Name   string `json:"name"`
	Factor Amount `json:"factor"`
	IsBase bool   `json:"isBase"`
}

// Product is a stock item or service in the product registry. Quantity
// tracks current stock in base units and is seeded from OpeningQuantity
// when the product is created. Services carry no stock.
type Product struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code,omitempty"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category,omitempty"`
	CostingPrice    Amount `json:"costingPrice"`
	SalesPrice      Amount `json:"salesPrice"`
	OpeningQuantity Amount `json:"openingQuantity"`
	Quantity        Amount `json:"quantity"`
	IsService       bool   `json:"isService"`
	Units           []Unit `json:"units,omitempty"`
}

// BaseUnit returns the product's base unit, if one is defined.
func (p *Product) BaseUnit() (Unit, bool) {
	for _, u := range p.Units {
		if u.IsBase {
			return u, true
		}
	}
	return Unit{}, false
}

// UnitFactor returns the base-unit conversion factor for the named
// unit. Unknown units convert 1:1.
func (p *Product) UnitFactor(name string) Amount {
	for _, u := range p.Units {
		if u.Name == name {
			return u.Factor
		}
	}
	return AmountFromInt(1)
}
