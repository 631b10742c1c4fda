package shoppinglist_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/pkg/inventory"
	"mealplanner/pkg/menuplan"
	"mealplanner/pkg/recipe"
	"mealplanner/pkg/shoppinglist"
)

const testUserID = "7b7e3a46-1c5b-4a51-9c2c-3f6b6f1f2a10"

type fixture struct {
	db               *gorm.DB
	listService      shoppinglist.ShoppingListService
	planService      menuplan.MenuPlanService
	recipeService    recipe.RecipeService
	inventoryService inventory.InventoryService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
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
	))

	settings := domain.DefaultEngineSettings()
	recipeRepository := recipe.NewRecipeRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	planRepository := menuplan.NewMenuPlanRepository(db)
	inventoryService := inventory.NewInventoryService(db, inventoryRepository, settings)

	return &fixture{
		db:               db,
		listService:      shoppinglist.NewShoppingListService(planRepository, recipeRepository, inventoryRepository, inventoryService),
		planService:      menuplan.NewMenuPlanService(db, planRepository, recipeRepository),
		recipeService:    recipe.NewRecipeService(recipeRepository, settings),
		inventoryService: inventoryService,
	}
}

func (f *fixture) createRecipe(t *testing.T, title string, servings int, ingredients []domain.IngredientInput) domain.RecipeResponse {
	t.Helper()
	res, err := f.recipeService.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:        title,
		Servings:     servings,
		Difficulty:   "easy",
		Instructions: "Cook it.",
		Ingredients:  ingredients,
	}, testUserID)
	require.NoError(t, err)
	return res
}

func nextMonday() string {
	d := time.Now()
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func (f *fixture) planWith(t *testing.T, meals []domain.PlannedMealInput) *domain.MenuPlanResponse {
	t.Helper()
	plan, err := f.planService.CreatePlan(context.Background(), domain.CreateMenuPlanRequest{
		WeekStartDate: nextMonday(),
		Meals:         meals,
	}, testUserID)
	require.NoError(t, err)
	return plan
}

func findItem(res *domain.ShoppingListResponse, name string) *domain.ShoppingListItem {
	for _, items := range res.Groups {
		for i := range items {
			if items[i].Name == name {
				return &items[i]
			}
		}
	}
	return nil
}

func TestNettingAcrossMealsCaseInsensitive(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cereal := f.createRecipe(t, "Cereal", 1, []domain.IngredientInput{
		{Name: "Milk", Quantity: decimal.NewFromInt(2), Unit: "cup", Category: "dairy"},
	})
	pancakes := f.createRecipe(t, "Pancakes", 1, []domain.IngredientInput{
		{Name: "Milk", Quantity: decimal.NewFromInt(3), Unit: "cup", Category: "dairy"},
	})
	plan := f.planWith(t, []domain.PlannedMealInput{
		{RecipeID: cereal.ID, MealDate: nextMonday(), MealType: "breakfast", ServingsPlanned: 1},
		{RecipeID: pancakes.ID, MealDate: nextMonday(), MealType: "breakfast", ServingsPlanned: 1},
	})

	// stock is lower-cased on purpose: matching is case-insensitive
	_, err := f.inventoryService.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "milk",
		Quantity: decimal.NewFromInt(1),
		Unit:     "cup",
	}, testUserID)
	require.NoError(t, err)

	res, err := f.listService.GenerateList(ctx, plan.ID)
	require.NoError(t, err)

	item := findItem(res, "Milk")
	require.NotNil(t, item)
	assert.True(t, item.TotalNeeded.Equal(decimal.NewFromInt(5)))
	assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.NetNeeded.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, domain.StatusNeedToBuy, item.Status)
	assert.ElementsMatch(t, []string{"Cereal", "Pancakes"}, item.NeededForRecipes)
}

func TestOptionalIngredientsAreSkipped(t *testing.T) {
	f := setup(t)

	rec := f.createRecipe(t, "Salad", 2, []domain.IngredientInput{
		{Name: "Lettuce", Quantity: decimal.NewFromInt(1), Unit: "head", Category: "produce"},
		{Name: "Croutons", Quantity: decimal.NewFromInt(50), Unit: "g", Category: "bakery", IsOptional: true},
	})
	plan := f.planWith(t, []domain.PlannedMealInput{
		{RecipeID: rec.ID, MealDate: nextMonday(), MealType: "lunch", ServingsPlanned: 2},
	})

	res, err := f.listService.GenerateList(context.Background(), plan.ID)
	require.NoError(t, err)

	assert.NotNil(t, findItem(res, "Lettuce"))
	assert.Nil(t, findItem(res, "Croutons"))
	assert.Equal(t, 1, res.TotalItems)
}

func TestSufficientStockOmittedButCounted(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	rec := f.createRecipe(t, "Omelette", 2, []domain.IngredientInput{
		{Name: "Eggs", Quantity: decimal.NewFromInt(4), Unit: "pcs", Category: "dairy"},
		{Name: "Cheese", Quantity: decimal.NewFromInt(100), Unit: "g", Category: "dairy"},
	})
	plan := f.planWith(t, []domain.PlannedMealInput{
		{RecipeID: rec.ID, MealDate: nextMonday(), MealType: "breakfast", ServingsPlanned: 2},
	})

	_, err := f.inventoryService.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "Eggs",
		Quantity: decimal.NewFromInt(12),
	}, testUserID)
	require.NoError(t, err)

	res, err := f.listService.GenerateList(ctx, plan.ID)
	require.NoError(t, err)

	assert.Nil(t, findItem(res, "Eggs"), "fully stocked items stay off the buy list")
	cheese := findItem(res, "Cheese")
	require.NotNil(t, cheese)
	assert.Equal(t, domain.StatusNotInInventory, cheese.Status)

	assert.Equal(t, 2, res.TotalItems)
	assert.Equal(t, 1, res.ToBuyItems)
	assert.Equal(t, 1, res.InStock)
}

func TestCookedMealsExcluded(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	rec := f.createRecipe(t, "Chili", 2, []domain.IngredientInput{
		{Name: "Beans", Quantity: decimal.NewFromInt(400), Unit: "g", Category: "canned"},
	})
	plan := f.planWith(t, []domain.PlannedMealInput{
		{RecipeID: rec.ID, MealDate: nextMonday(), MealType: "dinner", ServingsPlanned: 2},
	})

	_, err := f.planService.MarkMealCooked(ctx, plan.Meals[0].ID, testUserID)
	require.NoError(t, err)

	res, err := f.listService.GenerateList(ctx, plan.ID)
	require.NoError(t, err)
	assert.Zero(t, res.TotalItems)
}

func TestScalingByPlannedServings(t *testing.T) {
	f := setup(t)

	rec := f.createRecipe(t, "Risotto", 2, []domain.IngredientInput{
		{Name: "Rice", Quantity: decimal.NewFromInt(200), Unit: "g", Category: "grains"},
	})
	plan := f.planWith(t, []domain.PlannedMealInput{
		{RecipeID: rec.ID, MealDate: nextMonday(), MealType: "dinner", ServingsPlanned: 6},
	})

	res, err := f.listService.GenerateList(context.Background(), plan.ID)
	require.NoError(t, err)

	item := findItem(res, "Rice")
	require.NotNil(t, item)
	assert.True(t, item.TotalNeeded.Equal(decimal.NewFromInt(600)))
}

func TestGroupsSortedByName(t *testing.T) {
	f := setup(t)

	rec := f.createRecipe(t, "Fruit Bowl", 1, []domain.IngredientInput{
		{Name: "Pear", Quantity: decimal.NewFromInt(1), Unit: "pcs", Category: "produce"},
		{Name: "Apple", Quantity: decimal.NewFromInt(1), Unit: "pcs", Category: "produce"},
		{Name: "Banana", Quantity: decimal.NewFromInt(1), Unit: "pcs", Category: "produce"},
	})
	plan := f.planWith(t, []domain.PlannedMealInput{
		{RecipeID: rec.ID, MealDate: nextMonday(), MealType: "snack", ServingsPlanned: 1},
	})

	res, err := f.listService.GenerateList(context.Background(), plan.ID)
	require.NoError(t, err)

	produce := res.Groups["produce"]
	require.Len(t, produce, 3)
	assert.Equal(t, "Apple", produce[0].Name)
	assert.Equal(t, "Banana", produce[1].Name)
	assert.Equal(t, "Pear", produce[2].Name)
}

func TestMissingCategoryFallsBackToOther(t *testing.T) {
	f := setup(t)

	rec := f.createRecipe(t, "Mystery Dish", 1, []domain.IngredientInput{
		{Name: "Secret Sauce", Quantity: decimal.NewFromInt(1), Unit: "jar"},
	})
	plan := f.planWith(t, []domain.PlannedMealInput{
		{RecipeID: rec.ID, MealDate: nextMonday(), MealType: "dinner", ServingsPlanned: 1},
	})

	res, err := f.listService.GenerateList(context.Background(), plan.ID)
	require.NoError(t, err)
	require.Len(t, res.Groups["other"], 1)
}

func TestGenerateListUnknownPlan(t *testing.T) {
	f := setup(t)

	_, err := f.listService.GenerateList(context.Background(), "c009cf67-94a3-4a38-8f5a-0f4f5c4a8e01")
	assert.ErrorIs(t, err, domain.ErrMenuPlanNotFound)
}
