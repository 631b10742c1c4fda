package routes

import (
	"github.com/gofiber/fiber/v2"

	"mealplanner/internal/api/handlers"
	"mealplanner/internal/middleware"
	"mealplanner/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	RecipeHandler       handlers.RecipeHandler
	InventoryHandler    handlers.InventoryHandler
	MenuPlanHandler     handlers.MenuPlanHandler
	SuggestionHandler   handlers.SuggestionHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Inventory()
	c.MenuPlans()
	c.Suggestions()
	c.Notifications()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetails)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)

	// version history
	recipes.Get("/:id/versions", c.RecipeHandler.GetVersions)
	recipes.Post("/:id/revert", c.RecipeHandler.RevertVersion)

	// ratings
	recipes.Post("/:id/ratings", c.RecipeHandler.SaveRating)
	recipes.Get("/:id/ratings", c.RecipeHandler.GetRatings)
	recipes.Get("/:id/ratings/summary", c.RecipeHandler.GetRatingSummary)
	recipes.Delete("/:id/ratings", c.RecipeHandler.DeleteRating)
}

func (c *Config) Inventory() {
	inventory := c.App.Group("/api/v1/inventory", c.Middleware.AuthMiddleware(c.JWTService))

	inventory.Post("", c.InventoryHandler.AddItem)
	inventory.Get("", c.InventoryHandler.GetItems)
	inventory.Get("/expiring", c.InventoryHandler.GetExpiringItems)
	inventory.Get("/:id", c.InventoryHandler.GetItemDetails)
	inventory.Put("/:id", c.InventoryHandler.UpdateItem)
	inventory.Delete("/:id", c.InventoryHandler.DeleteItem)
	inventory.Get("/:id/history", c.InventoryHandler.GetItemHistory)
}

func (c *Config) MenuPlans() {
	plans := c.App.Group("/api/v1/menu-plans", c.Middleware.AuthMiddleware(c.JWTService))

	plans.Post("", c.MenuPlanHandler.CreatePlan)
	plans.Get("", c.MenuPlanHandler.GetPlans)
	plans.Get("/:id", c.MenuPlanHandler.GetPlanDetails)
	plans.Put("/:id", c.MenuPlanHandler.UpdatePlan)
	plans.Delete("/:id", c.MenuPlanHandler.DeletePlan)

	plans.Post("/:id/meals", c.MenuPlanHandler.AddMeal)
	plans.Delete("/:id/meals/:meal_id", c.MenuPlanHandler.RemoveMeal)
	plans.Post("/:id/meals/:meal_id/cooked", c.MenuPlanHandler.MarkMealCooked)

	plans.Get("/:id/shopping-list", c.MenuPlanHandler.GetShoppingList)
	plans.Post("/shopping-list/purchased", c.MenuPlanHandler.MarkPurchased)
}

func (c *Config) Suggestions() {
	c.App.Get("/api/v1/suggestions", c.Middleware.AuthMiddleware(c.JWTService), c.SuggestionHandler.GetSuggestions)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))

	notifications.Get("", c.NotificationHandler.GetNotifications)
	notifications.Get("/unread-count", c.NotificationHandler.GetUnreadCount)
	notifications.Patch("/:id/read", c.NotificationHandler.MarkRead)
	notifications.Patch("/read-all", c.NotificationHandler.MarkAllRead)
	notifications.Delete("/:id", c.NotificationHandler.DeleteNotification)
	notifications.Post("/generate", c.Middleware.AdminOnly(), c.NotificationHandler.GenerateStockAlerts)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
