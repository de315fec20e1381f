package entity

// CatalogItem is a priced entry in the city's service catalog.
// Prices are minor currency units; zero means the service is free.
type CatalogItem struct {
	ID          string `json:"id"`
	ServiceType string `json:"service_type"` // "residential" | "commercial"
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`

	// RollCart marks cart-class services that route to manual review
	// (investigating) after payment instead of straight to submitted.
	RollCart bool `json:"roll_cart,omitempty"`

	// RentalDays is set for container rentals with a fixed period.
	RentalDays int `json:"rental_days,omitempty"`
}

var catalogItems = []CatalogItem{
	{
		ID:          "res-roll-off",
		ServiceType: "residential",
		Name:        "10 Yard Container",
		Description: "Roll-off container delivery, 2 week rental",
		PriceCents:  22600,
		RentalDays:  14,
	},
	{
		ID:          "res-roll-off-20",
		ServiceType: "residential",
		Name:        "20 Yard Container",
		Description: "Roll-off container delivery, 2 week rental",
		PriceCents:  34500,
		RentalDays:  14,
	},
	{
		ID:          "com-roll-off",
		ServiceType: "commercial",
		Name:        "30 Yard Container",
		Description: "Commercial roll-off container, 2 week rental",
		PriceCents:  48500,
		RentalDays:  14,
	},
	{
		ID:          "res-roll-cart",
		ServiceType: "residential",
		Name:        "Additional Roll Cart",
		Description: "Extra residential roll cart request",
		PriceCents:  0,
		RollCart:    true,
	},
	{
		ID:          "res-cart-repair",
		ServiceType: "residential",
		Name:        "Roll Cart Repair",
		Description: "Repair or replacement of a damaged roll cart",
		PriceCents:  0,
		RollCart:    true,
	},
	{
		ID:          "res-bulk-pickup",
		ServiceType: "residential",
		Name:        "Bulk Item Pickup",
		Description: "Curbside pickup of bulk household items",
		PriceCents:  3500,
	},
}

// Catalog returns the full service catalog.
func Catalog() []CatalogItem {
	items := make([]CatalogItem, len(catalogItems))
	copy(items, catalogItems)
	return items
}

// CatalogItemByID looks up a catalog item by its service id.
func CatalogItemByID(id string) (CatalogItem, bool) {
	for _, item := range catalogItems {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}
