package initializers

import (
	"log"

	"github.com/bitespot/bitespot-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wishlist{},
		&models.Review{},
	)
	log.Println("Database synced successfully.")
}
