package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/catalog"
	"github.com/oubata/HealThea/internal/commerce"
	"github.com/oubata/HealThea/internal/config"
	"github.com/oubata/HealThea/internal/domain"
)

// One-time provisioning of the commerce backend: region, fulfillment,
// shipping options, sales channel with a publishable key, categories, and
// the tea catalog with inventory. Safe to rerun; resources that already
// exist are reported and skipped.
func main() {
	backendFlag := flag.String("backend-url", "", "Commerce backend URL (defaults to COMMERCE_BACKEND_URL)")
	emailFlag := flag.String("email", "", "Admin email (defaults to COMMERCE_ADMIN_EMAIL)")
	passwordFlag := flag.String("password", "", "Admin password (defaults to COMMERCE_ADMIN_PASSWORD)")
	skipProducts := flag.Bool("skip-products", false, "Provision store settings only, no categories or products")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	backendURL := cfg.Commerce.BaseURL
	if *backendFlag != "" {
		backendURL = *backendFlag
	}
	email := cfg.Commerce.AdminEmail
	if *emailFlag != "" {
		email = *emailFlag
	}
	password := cfg.Commerce.AdminPassword
	if *passwordFlag != "" {
		password = *passwordFlag
	}
	if email == "" || password == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/seed/main.go --email admin@example.com --password secret [--backend-url http://localhost:9000] [--skip-products]")
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	admin := commerce.NewAdminClient(backendURL, logger)
	if err := admin.Login(ctx, email, password); err != nil {
		fmt.Fprintf(os.Stderr, "Admin login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logged in to %s\n", backendURL)

	s := &seeder{admin: admin, logger: logger}

	regionID, err := s.ensureRegion(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed region: %v\n", err)
		os.Exit(1)
	}

	locationID, zoneID, profileID, err := s.ensureFulfillment(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed fulfillment: %v\n", err)
		os.Exit(1)
	}

	if err := s.ensureShippingOptions(ctx, zoneID, profileID); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed shipping options: %v\n", err)
		os.Exit(1)
	}

	channelID, publishableKey, err := s.ensureSalesChannel(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed sales channel: %v\n", err)
		os.Exit(1)
	}

	if !*skipProducts {
		categoryIDs, err := s.seedCategories(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed categories: %v\n", err)
			os.Exit(1)
		}
		if err := s.seedProducts(ctx, channelID, locationID, categoryIDs); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed products: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("\nSeeding complete.\n")
	fmt.Printf("Region ID: %s\n", regionID)
	if publishableKey != "" {
		fmt.Printf("Publishable key: %s\n", publishableKey)
		fmt.Printf("\nSet COMMERCE_PUBLISHABLE_KEY to this value before starting the server.\n")
	}
}

type seeder struct {
	admin  *commerce.AdminClient
	logger *zap.Logger
}

func (s *seeder) ensureRegion(ctx context.Context) (string, error) {
	var existing struct {
		Regions []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"regions"`
	}
	if err := s.admin.GetResource(ctx, "/admin/regions", &existing); err != nil {
		return "", err
	}
	for _, r := range existing.Regions {
		if r.Name == "Canada" {
			fmt.Printf("Region %q already exists (%s)\n", r.Name, r.ID)
			return r.ID, nil
		}
	}

	var out struct {
		Region struct {
			ID string `json:"id"`
		} `json:"region"`
	}
	body := map[string]interface{}{
		"name":              "Canada",
		"currency_code":     "cad",
		"countries":         []string{"ca"},
		"payment_providers": []string{"pp_system_default"},
	}
	if err := s.admin.CreateResource(ctx, "/admin/regions", body, &out); err != nil {
		return "", err
	}
	fmt.Printf("Created region Canada (%s)\n", out.Region.ID)

	// Tax region so carts get tax lines; an existing one is fine
	if err := s.admin.CreateResource(ctx, "/admin/tax-regions", map[string]interface{}{
		"country_code": "ca",
	}, nil); err != nil {
		s.logger.Warn("Tax region creation failed (may already exist)", zap.Error(err))
	}
	return out.Region.ID, nil
}

func (s *seeder) ensureFulfillment(ctx context.Context) (locationID, zoneID, profileID string, err error) {
	var locations struct {
		StockLocations []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"stock_locations"`
	}
	if err = s.admin.GetResource(ctx, "/admin/stock-locations", &locations); err != nil {
		return
	}
	for _, l := range locations.StockLocations {
		if l.Name == "HealThea Warehouse" {
			locationID = l.ID
			break
		}
	}
	if locationID == "" {
		var out struct {
			StockLocation struct {
				ID string `json:"id"`
			} `json:"stock_location"`
		}
		body := map[string]interface{}{
			"name": "HealThea Warehouse",
			"address": map[string]interface{}{
				"city":         "Toronto",
				"country_code": "CA",
				"address_1":    "100 Steeping Way",
			},
		}
		if err = s.admin.CreateResource(ctx, "/admin/stock-locations", body, &out); err != nil {
			return
		}
		locationID = out.StockLocation.ID
		fmt.Printf("Created stock location (%s)\n", locationID)
	}

	var profiles struct {
		ShippingProfiles []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"shipping_profiles"`
	}
	if err = s.admin.GetResource(ctx, "/admin/shipping-profiles", &profiles); err != nil {
		return
	}
	for _, p := range profiles.ShippingProfiles {
		if p.Type == "default" {
			profileID = p.ID
			break
		}
	}
	if profileID == "" {
		var out struct {
			ShippingProfile struct {
				ID string `json:"id"`
			} `json:"shipping_profile"`
		}
		if err = s.admin.CreateResource(ctx, "/admin/shipping-profiles", map[string]interface{}{
			"name": "Default", "type": "default",
		}, &out); err != nil {
			return
		}
		profileID = out.ShippingProfile.ID
		fmt.Printf("Created shipping profile (%s)\n", profileID)
	}

	// Fulfillment set with one Canada-wide service zone on the location
	var fulfillment struct {
		FulfillmentSet struct {
			ID           string `json:"id"`
			ServiceZones []struct {
				ID string `json:"id"`
			} `json:"service_zones"`
		} `json:"fulfillment_set"`
	}
	body := map[string]interface{}{
		"name": "Canada delivery",
		"type": "shipping",
		"service_zones": []map[string]interface{}{
			{
				"name": "Canada",
				"geo_zones": []map[string]interface{}{
					{"type": "country", "country_code": "ca"},
				},
			},
		},
	}
	if err = s.admin.CreateResource(ctx, "/admin/stock-locations/"+locationID+"/fulfillment-sets", body, &fulfillment); err != nil {
		// Likely already provisioned; look it up instead
		var loc struct {
			StockLocation struct {
				FulfillmentSets []struct {
					ServiceZones []struct {
						ID string `json:"id"`
					} `json:"service_zones"`
				} `json:"fulfillment_sets"`
			} `json:"stock_location"`
		}
		if lookupErr := s.admin.GetResource(ctx, "/admin/stock-locations/"+locationID+"?fields=*fulfillment_sets.service_zones", &loc); lookupErr != nil {
			return "", "", "", fmt.Errorf("create fulfillment set: %w", err)
		}
		for _, fs := range loc.StockLocation.FulfillmentSets {
			for _, z := range fs.ServiceZones {
				zoneID = z.ID
				break
			}
		}
		if zoneID == "" {
			return "", "", "", fmt.Errorf("create fulfillment set: %w", err)
		}
		err = nil
		return
	}
	if len(fulfillment.FulfillmentSet.ServiceZones) > 0 {
		zoneID = fulfillment.FulfillmentSet.ServiceZones[0].ID
	}
	fmt.Printf("Created fulfillment set (%s)\n", fulfillment.FulfillmentSet.ID)
	return
}

func (s *seeder) ensureShippingOptions(ctx context.Context, zoneID, profileID string) error {
	options := []struct {
		name   string
		amount int64
	}{
		{"Standard Shipping", 500},
		{"Express Shipping", 1500},
	}

	var existing struct {
		ShippingOptions []struct {
			Name string `json:"name"`
		} `json:"shipping_options"`
	}
	if err := s.admin.GetResource(ctx, "/admin/shipping-options", &existing); err != nil {
		return err
	}
	have := make(map[string]bool)
	for _, o := range existing.ShippingOptions {
		have[o.Name] = true
	}

	for _, opt := range options {
		if have[opt.name] {
			fmt.Printf("Shipping option %q already exists\n", opt.name)
			continue
		}
		body := map[string]interface{}{
			"name":                opt.name,
			"price_type":          "flat",
			"provider_id":         "manual_manual",
			"service_zone_id":     zoneID,
			"shipping_profile_id": profileID,
			"type": map[string]interface{}{
				"label":       opt.name,
				"description": "Ships in 2-7 business days",
				"code":        strings.ToLower(strings.Fields(opt.name)[0]),
			},
			"prices": []map[string]interface{}{
				{"currency_code": "cad", "amount": opt.amount},
			},
		}
		if err := s.admin.CreateResource(ctx, "/admin/shipping-options", body, nil); err != nil {
			return fmt.Errorf("create shipping option %q: %w", opt.name, err)
		}
		fmt.Printf("Created shipping option %q\n", opt.name)
	}
	return nil
}

func (s *seeder) ensureSalesChannel(ctx context.Context) (string, string, error) {
	var channels struct {
		SalesChannels []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"sales_channels"`
	}
	if err := s.admin.GetResource(ctx, "/admin/sales-channels", &channels); err != nil {
		return "", "", err
	}
	channelID := ""
	for _, ch := range channels.SalesChannels {
		if ch.Name == "HealThea Storefront" {
			channelID = ch.ID
			fmt.Printf("Sales channel already exists (%s)\n", channelID)
			break
		}
	}
	if channelID == "" {
		var out struct {
			SalesChannel struct {
				ID string `json:"id"`
			} `json:"sales_channel"`
		}
		if err := s.admin.CreateResource(ctx, "/admin/sales-channels", map[string]interface{}{
			"name": "HealThea Storefront",
		}, &out); err != nil {
			return "", "", err
		}
		channelID = out.SalesChannel.ID
		fmt.Printf("Created sales channel (%s)\n", channelID)
	}

	var key struct {
		APIKey struct {
			ID    string `json:"id"`
			Token string `json:"token"`
		} `json:"api_key"`
	}
	if err := s.admin.CreateResource(ctx, "/admin/api-keys", map[string]interface{}{
		"title": "HealThea Storefront",
		"type":  "publishable",
	}, &key); err != nil {
		s.logger.Warn("Publishable key creation failed (may already exist)", zap.Error(err))
		return channelID, "", nil
	}
	if err := s.admin.CreateResource(ctx, "/admin/api-keys/"+key.APIKey.ID+"/sales-channels", map[string]interface{}{
		"add": []string{channelID},
	}, nil); err != nil {
		return channelID, "", fmt.Errorf("link publishable key to channel: %w", err)
	}
	fmt.Printf("Created publishable key\n")
	return channelID, key.APIKey.Token, nil
}

func (s *seeder) seedCategories(ctx context.Context) (map[string]string, error) {
	var existing struct {
		ProductCategories []struct {
			ID     string `json:"id"`
			Handle string `json:"handle"`
		} `json:"product_categories"`
	}
	if err := s.admin.GetResource(ctx, "/admin/product-categories?limit=100", &existing); err != nil {
		return nil, err
	}
	byHandle := make(map[string]string)
	for _, c := range existing.ProductCategories {
		byHandle[c.Handle] = c.ID
	}

	// Maps the built-in category IDs to the backend's generated ones
	ids := make(map[string]string)
	for _, cat := range catalog.FallbackCategories() {
		if id, ok := byHandle[cat.Slug]; ok {
			fmt.Printf("Category %q already exists\n", cat.Name)
			ids[cat.ID] = id
			continue
		}
		var out struct {
			ProductCategory struct {
				ID string `json:"id"`
			} `json:"product_category"`
		}
		body := map[string]interface{}{
			"name":        cat.Name,
			"handle":      cat.Slug,
			"description": cat.Description,
			"is_active":   true,
			"metadata":    map[string]string{"image": cat.Image},
		}
		if err := s.admin.CreateResource(ctx, "/admin/product-categories", body, &out); err != nil {
			return nil, fmt.Errorf("create category %q: %w", cat.Name, err)
		}
		ids[cat.ID] = out.ProductCategory.ID
		fmt.Printf("Created category %q\n", cat.Name)
	}
	return ids, nil
}

func (s *seeder) seedProducts(ctx context.Context, channelID, locationID string, categoryIDs map[string]string) error {
	var existing struct {
		Products []struct {
			Handle string `json:"handle"`
		} `json:"products"`
	}
	if err := s.admin.GetResource(ctx, "/admin/products?limit=100", &existing); err != nil {
		return err
	}
	have := make(map[string]bool)
	for _, p := range existing.Products {
		have[p.Handle] = true
	}

	for _, p := range catalog.FallbackProducts() {
		if have[p.Handle] {
			fmt.Printf("Product %q already exists\n", p.Title)
			continue
		}
		if err := s.createProduct(ctx, p, channelID, categoryIDs); err != nil {
			return fmt.Errorf("create product %q: %w", p.Title, err)
		}
		if err := s.stockProduct(ctx, p, locationID); err != nil {
			s.logger.Warn("Failed to set inventory levels", zap.String("product", p.Handle), zap.Error(err))
		}
		fmt.Printf("Created product %q\n", p.Title)
	}
	return nil
}

func (s *seeder) createProduct(ctx context.Context, p domain.Product, channelID string, categoryIDs map[string]string) error {
	values := make([]string, 0, len(p.Variants))
	variants := make([]map[string]interface{}, 0, len(p.Variants))
	for _, v := range p.Variants {
		values = append(values, v.Title)
		variants = append(variants, map[string]interface{}{
			"title":            v.Title,
			"sku":              skuFor(p.Handle, v.Title),
			"options":          map[string]string{"Weight": v.Title},
			"manage_inventory": true,
			"prices": []map[string]interface{}{
				{"currency_code": "cad", "amount": v.Price},
			},
		})
	}

	tags := make([]map[string]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, map[string]string{"value": t})
	}

	body := map[string]interface{}{
		"title":       p.Title,
		"handle":      p.Handle,
		"description": p.Description,
		"thumbnail":   p.Thumbnail,
		"status":      "published",
		"images":      []map[string]string{{"url": p.Thumbnail}},
		"options": []map[string]interface{}{
			{"title": "Weight", "values": values},
		},
		"variants":       variants,
		"tags":           tags,
		"metadata":       p.Metadata,
		"sales_channels": []map[string]string{{"id": channelID}},
	}
	if catID, ok := categoryIDs[p.CategoryID]; ok {
		body["categories"] = []map[string]string{{"id": catID}}
	}
	return s.admin.CreateResource(ctx, "/admin/products", body, nil)
}

func (s *seeder) stockProduct(ctx context.Context, p domain.Product, locationID string) error {
	for _, v := range p.Variants {
		sku := skuFor(p.Handle, v.Title)
		var items struct {
			InventoryItems []struct {
				ID string `json:"id"`
			} `json:"inventory_items"`
		}
		if err := s.admin.GetResource(ctx, "/admin/inventory-items?sku="+sku, &items); err != nil {
			return err
		}
		if len(items.InventoryItems) == 0 {
			continue
		}
		body := map[string]interface{}{
			"location_id":      locationID,
			"stocked_quantity": v.InventoryQuantity,
		}
		if err := s.admin.CreateResource(ctx, "/admin/inventory-items/"+items.InventoryItems[0].ID+"/location-levels", body, nil); err != nil {
			return err
		}
	}
	return nil
}

func skuFor(handle, variantTitle string) string {
	v := strings.ToUpper(strings.ReplaceAll(variantTitle, " ", "-"))
	return strings.ToUpper(strings.ReplaceAll(handle, "-", "_")) + "_" + v
}
