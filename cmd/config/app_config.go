package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"mealplanner/internal/api/handlers"
	"mealplanner/internal/api/routes"
	"mealplanner/internal/middleware"
	"mealplanner/internal/utils"
	"mealplanner/pkg/inventory"
	"mealplanner/pkg/jwt"
	"mealplanner/pkg/menuplan"
	"mealplanner/pkg/notification"
	"mealplanner/pkg/rating"
	"mealplanner/pkg/recipe"
	"mealplanner/pkg/shoppinglist"
	"mealplanner/pkg/suggestion"
	"mealplanner/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	settings := utils.EngineSettings()

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ratingRepository := rating.NewRatingRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	menuPlanRepository := menuplan.NewMenuPlanRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, settings)
	ratingService := rating.NewRatingService(ratingRepository, settings)
	inventoryService := inventory.NewInventoryService(db, inventoryRepository, settings)
	menuPlanService := menuplan.NewMenuPlanService(db, menuPlanRepository, recipeRepository)
	shoppingListService := shoppinglist.NewShoppingListService(menuPlanRepository, recipeRepository, inventoryRepository, inventoryService)
	suggestionService := suggestion.NewSuggestionService(recipeRepository, ratingRepository, inventoryRepository, settings)
	notificationService := notification.NewNotificationService(notificationRepository, inventoryRepository, userRepository, settings)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, ratingService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	menuPlanHandler := handlers.NewMenuPlanHandler(menuPlanService, shoppingListService, validator)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		RecipeHandler:       recipeHandler,
		InventoryHandler:    inventoryHandler,
		MenuPlanHandler:     menuPlanHandler,
		SuggestionHandler:   suggestionHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
