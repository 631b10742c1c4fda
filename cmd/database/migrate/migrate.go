package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"mealplanner/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []interface{}{
		&entities.User{},
		&entities.Recipe{},
		&entities.RecipeVersion{},
		&entities.Ingredient{},
		&entities.RecipeTag{},
		&entities.Rating{},
		&entities.InventoryItem{},
		&entities.InventoryHistory{},
		&entities.MenuPlan{},
		&entities.PlannedMeal{},
		&entities.Notification{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating database: %v", err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
