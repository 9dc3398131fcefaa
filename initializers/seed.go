package initializers

import (
	"log"

	"github.com/bitespot/bitespot-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultCatalog is the stock street-food menu the store ships with.
// POST /products/restore wipes the catalog and reinserts these.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{Code: "AP001", Name: "Crispy Spring Rolls", Category: "Appetizers", Price: 50.00, Stock: 25, Rating: 4.3, Description: "Golden rolls stuffed with glass noodles and vegetables.", Tags: datatypes.JSON([]byte(`["veg","fried"]`))},
		{Code: "AP002", Name: "Chili Garlic Edamame", Category: "Appetizers", Price: 45.00, Stock: 30, Rating: 4.1, Description: "Steamed edamame tossed in chili garlic oil.", Tags: datatypes.JSON([]byte(`["veg","spicy"]`))},
		{Code: "MC001", Name: "Smoky Chicken Skewers", Category: "Main Course", Price: 95.00, Stock: 20, Rating: 4.6, Description: "Charcoal-grilled skewers with peanut sauce.", Tags: datatypes.JSON([]byte(`["grilled"]`))},
		{Code: "MC002", Name: "Beef Rendang Bowl", Category: "Main Course", Price: 120.00, Stock: 15, Rating: 4.8, Description: "Slow-cooked beef over jasmine rice.", Tags: datatypes.JSON([]byte(`["rice","spicy"]`))},
		{Code: "DS001", Name: "Mango Sticky Rice", Category: "Desserts", Price: 60.00, Stock: 18, Rating: 4.7, Description: "Sweet coconut rice with ripe mango.", Tags: datatypes.JSON([]byte(`["veg","sweet"]`))},
		{Code: "DS002", Name: "Fried Banana Fritters", Category: "Desserts", Price: 40.00, Stock: 22, Rating: 4.2, Description: "Caramelized banana in a crisp batter.", Tags: datatypes.JSON([]byte(`["veg","fried","sweet"]`))},
		{Code: "SF001", Name: "Loaded Fish Tacos", Category: "Street Food", Price: 85.00, Stock: 16, Rating: 4.4, Description: "Grilled fish, slaw and lime crema.", Tags: datatypes.JSON([]byte(`["seafood"]`))},
		{Code: "SF002", Name: "Pork Belly Bao", Category: "Street Food", Price: 75.00, Stock: 24, Rating: 4.5, Description: "Pillowy bao with braised pork belly.", Tags: datatypes.JSON([]byte(`["steamed"]`))},
		{Code: "DR001", Name: "Thai Iced Tea", Category: "Drinks", Price: 35.00, Stock: 40, Rating: 4.0, Description: "Strong black tea with condensed milk.", Tags: datatypes.JSON([]byte(`["cold","sweet"]`))},
		{Code: "DR002", Name: "Fresh Lime Soda", Category: "Drinks", Price: 30.00, Stock: 35, Rating: 3.9, Description: "Sparkling soda with hand-pressed lime.", Tags: datatypes.JSON([]byte(`["cold"]`))},
	}
}

// SeedProducts inserts the default catalog when the products table is empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, product := range DefaultCatalog() {
		if err := db.Create(&product).Error; err != nil {
			return err
		}
	}
	log.Println("Seeded default product catalog.")
	return nil
}

// RestoreCatalog deletes every product and reinserts the defaults. Cart and
// wishlist rows pointing at removed products go with them.
func RestoreCatalog(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Wishlist{}).Error; err != nil {
			return err
		}
		for _, product := range DefaultCatalog() {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
