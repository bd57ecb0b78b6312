package commerce

import (
	"time"

	"github.com/oubata/HealThea/internal/domain"
)

// Wire shapes for the backend's JSON envelopes. Only the fields this
// storefront reads are mapped; everything else is ignored.

type wireLineItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ProductTitle  string `json:"product_title"`
	VariantTitle  string `json:"variant_title"`
	VariantID     string `json:"variant_id"`
	ProductID     string `json:"product_id"`
	ProductHandle string `json:"product_handle"`
	Thumbnail     string `json:"thumbnail"`
	UnitPrice     int64  `json:"unit_price"`
	Quantity      int    `json:"quantity"`
}

func (w wireLineItem) toDomain() domain.CartItem {
	title := w.ProductTitle
	if title == "" {
		title = w.Title
	}
	return domain.CartItem{
		ProductID:    w.ProductID,
		VariantID:    w.VariantID,
		Title:        title,
		VariantTitle: w.VariantTitle,
		UnitPrice:    w.UnitPrice,
		Quantity:     w.Quantity,
		Image:        w.Thumbnail,
		Handle:       w.ProductHandle,
		LineItemID:   w.ID,
	}
}

type wireCart struct {
	ID    string         `json:"id"`
	Email string         `json:"email"`
	Items []wireLineItem `json:"items"`
}

func (w wireCart) lineItems() []domain.CartItem {
	items := make([]domain.CartItem, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, it.toDomain())
	}
	return items
}

type cartEnvelope struct {
	Cart wireCart `json:"cart"`
}

type wireAddress struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone,omitempty"`
	Address1    string `json:"address_1"`
	City        string `json:"city"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

func toWireAddress(a domain.Address) wireAddress {
	return wireAddress{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Phone:       a.Phone,
		Address1:    a.Address1,
		City:        a.City,
		Province:    a.Province,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
	}
}

type shippingOptionsEnvelope struct {
	ShippingOptions []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Amount int64  `json:"amount"`
	} `json:"shipping_options"`
}

type paymentCollectionEnvelope struct {
	PaymentCollection struct {
		ID              string `json:"id"`
		PaymentSessions []struct {
			ID         string                 `json:"id"`
			ProviderID string                 `json:"provider_id"`
			Data       map[string]interface{} `json:"data"`
		} `json:"payment_sessions"`
	} `json:"payment_collection"`
}

type completeEnvelope struct {
	Type  string `json:"type"`
	Order struct {
		ID        string    `json:"id"`
		DisplayID int64     `json:"display_id"`
		Total     int64     `json:"total"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"order"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type tokenEnvelope struct {
	Token string `json:"token"`
}

type wireCustomer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (w wireCustomer) toDomain() domain.Customer {
	return domain.Customer{
		ID:        w.ID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
		Phone:     w.Phone,
	}
}

type customerEnvelope struct {
	Customer wireCustomer `json:"customer"`
}

type regionsEnvelope struct {
	Regions []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		CurrencyCode string `json:"currency_code"`
	} `json:"regions"`
}

type wireProduct struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Images      []struct {
		URL string `json:"url"`
	} `json:"images"`
	Variants []struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		InventoryQty    int    `json:"inventory_quantity"`
		CalculatedPrice struct {
			CalculatedAmount int64 `json:"calculated_amount"`
		} `json:"calculated_price"`
	} `json:"variants"`
	Categories []struct {
		ID string `json:"id"`
	} `json:"categories"`
	Tags []struct {
		Value string `json:"value"`
	} `json:"tags"`
	Metadata map[string]string `json:"metadata"`
}

func (w wireProduct) toDomain() domain.Product {
	p := domain.Product{
		ID:          w.ID,
		Title:       w.Title,
		Handle:      w.Handle,
		Description: w.Description,
		Thumbnail:   w.Thumbnail,
		Metadata:    w.Metadata,
	}
	for _, img := range w.Images {
		p.Images = append(p.Images, img.URL)
	}
	for _, v := range w.Variants {
		p.Variants = append(p.Variants, domain.ProductVariant{
			ID:                v.ID,
			Title:             v.Title,
			Price:             v.CalculatedPrice.CalculatedAmount,
			InventoryQuantity: v.InventoryQty,
		})
	}
	if len(w.Categories) > 0 {
		p.CategoryID = w.Categories[0].ID
	}
	for _, t := range w.Tags {
		p.Tags = append(p.Tags, t.Value)
	}
	return p
}

type productsEnvelope struct {
	Products []wireProduct `json:"products"`
}

type categoriesEnvelope struct {
	ProductCategories []struct {
		ID          string            `json:"id"`
		Name        string            `json:"name"`
		Handle      string            `json:"handle"`
		Description string            `json:"description"`
		Metadata    map[string]string `json:"metadata"`
	} `json:"product_categories"`
}
