package domain

import "time"

// CartItem represents one product variant line in the cart.
// UnitPrice is in minor currency units (cents).
type CartItem struct {
	ProductID    string `json:"product_id"`
	VariantID    string `json:"variant_id"`
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title"`
	UnitPrice    int64  `json:"unit_price"`
	Quantity     int    `json:"quantity"`
	Image        string `json:"image"`
	Handle       string `json:"handle"`
	LineItemID   string `json:"line_item_id,omitempty"` // remote line item ID, empty until first sync
}

// Cart is the aggregate of items plus the remote cart identifier.
// Subtotal and ItemCount are derived, never stored.
type Cart struct {
	RemoteID string     `json:"remote_id,omitempty"`
	Items    []CartItem `json:"items"`
}

// Subtotal returns the sum of unit price times quantity across all items.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

// ItemCount returns the sum of quantities across all items.
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Address holds the shipping/billing address captured at checkout
type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Address1    string `json:"address_1"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

// ShippingOption is one fulfillment option returned for a cart's address
type ShippingOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Customer is the cached customer profile
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// Region is the commerce backend's pricing/tax context for a cart
type Region struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
}

// ProductVariant is a purchasable variant of a product
type ProductVariant struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Price             int64  `json:"price"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

// Product is a catalog product with its variants
type Product struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Handle      string            `json:"handle"`
	Description string            `json:"description"`
	Thumbnail   string            `json:"thumbnail"`
	Images      []string          `json:"images"`
	Variants    []ProductVariant  `json:"variants"`
	CategoryID  string            `json:"category_id"`
	Tags        []string          `json:"tags"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Category is a catalog category (collection)
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Order is the completed order returned by cart completion
type Order struct {
	ID        string    `json:"id"`
	DisplayID int64     `json:"display_id"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
