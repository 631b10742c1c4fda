package main

import (
	"github.com/sirupsen/logrus"

	"mealplanner/cmd/config"
	migration "mealplanner/cmd/database/migrate"
	"mealplanner/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		logrus.Fatalf("failed to build app: %v", err)
	}

	if err := app.Listen(":8080"); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
