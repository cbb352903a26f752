package domain

import "github.com/shopspring/decimal"

// Plugin is a catalog entry as served by the store API.
type Plugin struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Identifier         string          `json:"identifier"`
	Price              decimal.Decimal `json:"price"`
	CompatibleVersions string          `json:"compatibleVersions,omitempty"`
	Features           string          `json:"features,omitempty"`
	Commands           string          `json:"commands,omitempty"`
	Permissions        string          `json:"permissions,omitempty"`
	VideoPreview       string          `json:"videoPreview,omitempty"`
	ImageURLs          []string        `json:"imageUrls,omitempty"`
}

// CartItem is a snapshot of a plugin taken at the moment it was added to the
// cart. Later catalog edits do not touch items already in a cart.
type CartItem struct {
	ID         int64           `json:"id"`
	Identifier string          `json:"identifier"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	ImageURLs  []string        `json:"imageUrls,omitempty"`
}

func NewCartItem(p Plugin) CartItem {
	return CartItem{
		ID:         p.ID,
		Identifier: p.Identifier,
		Name:       p.Name,
		Price:      p.Price,
		ImageURLs:  p.ImageURLs,
	}
}

// CartTotal is derived on every read and never stored.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// CartIdentifiers lists the product identifiers in insertion order, for
// checkout payloads.
func CartIdentifiers(items []CartItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Identifier)
	}
	return ids
}
