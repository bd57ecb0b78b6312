package catalog

import "github.com/oubata/HealThea/internal/domain"

// Built-in tea catalog served when the commerce backend is unreachable, so
// catalog pages keep rendering instead of failing. The seed tool provisions
// the backend from this same data, which keeps fallback and live content
// aligned. Prices are cents CAD.

// FallbackCategories returns the static category set
func FallbackCategories() []domain.Category {
	return fallbackCategories
}

// FallbackProducts returns the static product set
func FallbackProducts() []domain.Product {
	return fallbackProducts
}

var fallbackCategories = []domain.Category{
	{ID: "col_green", Name: "Green Tea", Slug: "green-tea",
		Description: "Unoxidised teas with fresh, grassy flavours. Rich in catechins and antioxidants.",
		Image:       "https://images.unsplash.com/photo-1627435601361-ec25f5b1d0e5?w=1200&q=80"},
	{ID: "col_black", Name: "Black Tea", Slug: "black-tea",
		Description: "Fully oxidised teas with bold, robust flavours. From malty Assam to floral Darjeeling.",
		Image:       "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=1200&q=80"},
	{ID: "col_white", Name: "White Tea", Slug: "white-tea",
		Description: "The most delicate tea, minimally processed from young buds and leaves.",
		Image:       "https://images.unsplash.com/photo-1597318181409-cf64d0b5d8a2?w=1200&q=80"},
	{ID: "col_organic", Name: "Organic Tea", Slug: "organic-tea",
		Description: "Certified organic selections grown without synthetic pesticides or fertilisers.",
		Image:       "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=1200&q=80"},
	{ID: "col_herbal", Name: "Herbal Tea", Slug: "herbal-tea",
		Description: "Caffeine-free infusions crafted from flowers, herbs, and fruits.",
		Image:       "https://images.unsplash.com/photo-1564890369478-c89ca6d9cde9?w=1200&q=80"},
	{ID: "col_oolong", Name: "Oolong Tea", Slug: "oolong-tea",
		Description: "Partially oxidised teas bridging the gap between green and black.",
		Image:       "https://images.unsplash.com/photo-1563822249366-3efb23b8e0c9?w=1200&q=80"},
	{ID: "col_matcha", Name: "Matcha", Slug: "matcha",
		Description: "Stone-ground Japanese green tea powder, whisked into a frothy, vibrant cup.",
		Image:       "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=1200&q=80"},
	{ID: "col_chai", Name: "Chai", Slug: "chai",
		Description: "Aromatic spiced tea blends inspired by Indian chai traditions.",
		Image:       "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=1200&q=80"},
}

var fallbackProducts = []domain.Product{
	{
		ID: "prod_green_1", Title: "Japanese Sencha Green Tea", Handle: "japanese-sencha-green-tea",
		Description: "A classic Japanese green tea with a delicate balance of sweetness and astringency.",
		Thumbnail:   "https://images.unsplash.com/photo-1627435601361-ec25f5b1d0e5?w=500&q=80",
		CategoryID:  "col_green", Tags: []string{"antioxidant", "daily", "japanese"},
		Variants: []domain.ProductVariant{
			{ID: "var_g1_50", Title: "50g", Price: 1499, InventoryQuantity: 50},
			{ID: "var_g1_100", Title: "100g", Price: 2499, InventoryQuantity: 30},
			{ID: "var_g1_250", Title: "250g", Price: 4999, InventoryQuantity: 20},
		},
		Metadata: map[string]string{"origin_country": "Japan", "caffeine_level": "medium"},
	},
	{
		ID: "prod_green_2", Title: "Chinese Gunpowder Green Tea", Handle: "chinese-gunpowder-green-tea",
		Description: "Tightly rolled pellet-like leaves delivering a bold, slightly smoky flavour.",
		Thumbnail:   "https://images.unsplash.com/photo-1563822249366-3efb23b8e0c9?w=500&q=80",
		CategoryID:  "col_green", Tags: []string{"bold", "smoky", "chinese"},
		Variants: []domain.ProductVariant{
			{ID: "var_g2_50", Title: "50g", Price: 1199, InventoryQuantity: 40},
			{ID: "var_g2_100", Title: "100g", Price: 1999, InventoryQuantity: 25},
			{ID: "var_g2_250", Title: "250g", Price: 3999, InventoryQuantity: 15},
		},
		Metadata: map[string]string{"origin_country": "China", "caffeine_level": "medium"},
	},
	{
		ID: "prod_green_3", Title: "Dragonwell Longjing Green Tea", Handle: "dragonwell-longjing-green-tea",
		Description: "Pan-fired flat jade-green leaves with a sweet, chestnut-like flavour.",
		Thumbnail:   "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=500&q=80",
		CategoryID:  "col_green", Tags: []string{"premium", "chinese", "smooth"},
		Variants: []domain.ProductVariant{
			{ID: "var_g3_50", Title: "50g", Price: 1999, InventoryQuantity: 20},
			{ID: "var_g3_100", Title: "100g", Price: 3499, InventoryQuantity: 15},
		},
		Metadata: map[string]string{"origin_country": "China", "caffeine_level": "medium"},
	},
	{
		ID: "prod_black_1", Title: "Darjeeling First Flush Black Tea", Handle: "darjeeling-first-flush-black-tea",
		Description: "The 'Champagne of Teas', harvested in spring from the foothills of the Himalayas.",
		Thumbnail:   "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=500&q=80",
		CategoryID:  "col_black", Tags: []string{"premium", "floral", "indian"},
		Variants: []domain.ProductVariant{
			{ID: "var_b1_50", Title: "50g", Price: 1899, InventoryQuantity: 30},
			{ID: "var_b1_100", Title: "100g", Price: 3299, InventoryQuantity: 20},
			{ID: "var_b1_250", Title: "250g", Price: 6999, InventoryQuantity: 10},
		},
		Metadata: map[string]string{"origin_country": "India", "caffeine_level": "high"},
	},
	{
		ID: "prod_black_2", Title: "Earl Grey Supreme", Handle: "earl-grey-supreme",
		Description: "Classic black tea scented with natural bergamot oil and cornflower petals.",
		Thumbnail:   "https://images.unsplash.com/photo-1558618666-fcd25c85f82e?w=500&q=80",
		CategoryID:  "col_black", Tags: []string{"bergamot", "classic", "blend"},
		Variants: []domain.ProductVariant{
			{ID: "var_b2_50", Title: "50g", Price: 1399, InventoryQuantity: 45},
			{ID: "var_b2_100", Title: "100g", Price: 2399, InventoryQuantity: 30},
			{ID: "var_b2_250", Title: "250g", Price: 4799, InventoryQuantity: 20},
		},
		Metadata: map[string]string{"origin_country": "Sri Lanka", "caffeine_level": "high"},
	},
	{
		ID: "prod_black_3", Title: "English Breakfast Blend", Handle: "english-breakfast-blend",
		Description: "A full-bodied morning blend of Assam, Ceylon, and Kenyan teas.",
		Thumbnail:   "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=500&q=80",
		CategoryID:  "col_black", Tags: []string{"breakfast", "strong", "blend"},
		Variants: []domain.ProductVariant{
			{ID: "var_b3_50", Title: "50g", Price: 1099, InventoryQuantity: 60},
			{ID: "var_b3_100", Title: "100g", Price: 1899, InventoryQuantity: 40},
			{ID: "var_b3_250", Title: "250g", Price: 3799, InventoryQuantity: 25},
		},
		Metadata: map[string]string{"origin_country": "Blend", "caffeine_level": "high"},
	},
	{
		ID: "prod_white_1", Title: "Silver Needle White Tea", Handle: "silver-needle-white-tea",
		Description: "The finest white tea, made only from unopened buds picked in early spring.",
		Thumbnail:   "https://images.unsplash.com/photo-1597318181409-cf64d0b5d8a2?w=500&q=80",
		CategoryID:  "col_white", Tags: []string{"premium", "delicate", "chinese"},
		Variants: []domain.ProductVariant{
			{ID: "var_w1_50", Title: "50g", Price: 2499, InventoryQuantity: 15},
			{ID: "var_w1_100", Title: "100g", Price: 4499, InventoryQuantity: 10},
		},
		Metadata: map[string]string{"origin_country": "China", "caffeine_level": "low"},
	},
	{
		ID: "prod_white_2", Title: "White Peony (Bai Mudan)", Handle: "white-peony-bai-mudan",
		Description: "Buds and young leaves with a fuller body than Silver Needle and a floral finish.",
		Thumbnail:   "https://images.unsplash.com/photo-1597318181409-cf64d0b5d8a2?w=500&q=80",
		CategoryID:  "col_white", Tags: []string{"floral", "delicate", "chinese"},
		Variants: []domain.ProductVariant{
			{ID: "var_w2_50", Title: "50g", Price: 1799, InventoryQuantity: 25},
			{ID: "var_w2_100", Title: "100g", Price: 2999, InventoryQuantity: 15},
		},
		Metadata: map[string]string{"origin_country": "China", "caffeine_level": "low"},
	},
	{
		ID: "prod_herbal_1", Title: "Organic Chamomile Bliss", Handle: "organic-chamomile-bliss",
		Description: "Whole Egyptian chamomile flowers for a calming, caffeine-free evening cup.",
		Thumbnail:   "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=500&q=80",
		CategoryID:  "col_herbal", Tags: []string{"organic", "calming", "caffeine-free"},
		Variants: []domain.ProductVariant{
			{ID: "var_h1_50", Title: "50g", Price: 1299, InventoryQuantity: 40},
			{ID: "var_h1_100", Title: "100g", Price: 2199, InventoryQuantity: 25},
		},
		Metadata: map[string]string{"origin_country": "Egypt", "caffeine_level": "none"},
	},
	{
		ID: "prod_herbal_2", Title: "Peppermint Refresh", Handle: "peppermint-refresh",
		Description: "Pure peppermint leaves with a cool, invigorating finish. Naturally caffeine-free.",
		Thumbnail:   "https://images.unsplash.com/photo-1564890369478-c89ca6d9cde9?w=500&q=80",
		CategoryID:  "col_herbal", Tags: []string{"refreshing", "digestive", "caffeine-free"},
		Variants: []domain.ProductVariant{
			{ID: "var_h2_50", Title: "50g", Price: 1199, InventoryQuantity: 35},
			{ID: "var_h2_100", Title: "100g", Price: 1999, InventoryQuantity: 20},
		},
		Metadata: map[string]string{"origin_country": "USA", "caffeine_level": "none"},
	},
	{
		ID: "prod_oolong_1", Title: "Tieguanyin Iron Goddess Oolong", Handle: "tieguanyin-iron-goddess-oolong",
		Description: "A famous Chinese oolong with orchid-like aroma and a smooth, lingering sweetness.",
		Thumbnail:   "https://images.unsplash.com/photo-1563822249366-3efb23b8e0c9?w=500&q=80",
		CategoryID:  "col_oolong", Tags: []string{"premium", "floral", "chinese"},
		Variants: []domain.ProductVariant{
			{ID: "var_o1_50", Title: "50g", Price: 2199, InventoryQuantity: 20},
			{ID: "var_o1_100", Title: "100g", Price: 3899, InventoryQuantity: 12},
		},
		Metadata: map[string]string{"origin_country": "China", "caffeine_level": "medium"},
	},
	{
		ID: "prod_oolong_2", Title: "Milk Oolong (Jin Xuan)", Handle: "milk-oolong-jin-xuan",
		Description: "Taiwanese oolong with a naturally creamy texture and buttery sweetness.",
		Thumbnail:   "https://images.unsplash.com/photo-1564890369478-c89ca6d9cde9?w=500&q=80",
		CategoryID:  "col_oolong", Tags: []string{"creamy", "taiwanese", "smooth"},
		Variants: []domain.ProductVariant{
			{ID: "var_o2_50", Title: "50g", Price: 1899, InventoryQuantity: 25},
			{ID: "var_o2_100", Title: "100g", Price: 3299, InventoryQuantity: 15},
		},
		Metadata: map[string]string{"origin_country": "Taiwan", "caffeine_level": "medium"},
	},
	{
		ID: "prod_matcha_1", Title: "Ceremonial Grade Matcha", Handle: "ceremonial-grade-matcha",
		Description: "Stone-ground from first-harvest shade-grown leaves in Uji, Japan.",
		Thumbnail:   "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=500&q=80",
		CategoryID:  "col_matcha", Tags: []string{"premium", "japanese", "ceremonial"},
		Variants: []domain.ProductVariant{
			{ID: "var_m1_30", Title: "30g Tin", Price: 2999, InventoryQuantity: 20},
			{ID: "var_m1_100", Title: "100g Tin", Price: 7999, InventoryQuantity: 10},
		},
		Metadata: map[string]string{"origin_country": "Japan", "caffeine_level": "high"},
	},
	{
		ID: "prod_chai_1", Title: "Traditional Masala Chai", Handle: "traditional-masala-chai",
		Description: "Bold Assam black tea blended with cinnamon, cardamom, ginger, and cloves.",
		Thumbnail:   "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=500&q=80",
		CategoryID:  "col_chai", Tags: []string{"spiced", "warming", "indian"},
		Variants: []domain.ProductVariant{
			{ID: "var_c1_100", Title: "100g", Price: 1599, InventoryQuantity: 35},
			{ID: "var_c1_250", Title: "250g", Price: 3299, InventoryQuantity: 20},
		},
		Metadata: map[string]string{"origin_country": "India", "caffeine_level": "high"},
	},
	{
		ID: "prod_organic_1", Title: "Organic Rooibos Red Bush", Handle: "organic-rooibos-red-bush",
		Description: "South African red bush herbal tea, naturally sweet and caffeine-free.",
		Thumbnail:   "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=500&q=80",
		CategoryID:  "col_organic", Tags: []string{"organic", "caffeine-free", "south-african"},
		Variants: []domain.ProductVariant{
			{ID: "var_or1_100", Title: "100g", Price: 1399, InventoryQuantity: 30},
			{ID: "var_or1_250", Title: "250g", Price: 2799, InventoryQuantity: 18},
		},
		Metadata: map[string]string{"origin_country": "South Africa", "caffeine_level": "none"},
	},
}
