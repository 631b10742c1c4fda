package shoppinglist

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/internal/utils"
	"mealplanner/pkg/inventory"
	"mealplanner/pkg/menuplan"
	"mealplanner/pkg/recipe"
)

type (
	ShoppingListService interface {
		GenerateList(ctx context.Context, menuPlanID string) (*domain.ShoppingListResponse, error)
		MarkPurchased(ctx context.Context, req domain.MarkPurchasedRequest, userID string) (*entities.InventoryItem, error)
	}

	shoppingListService struct {
		menuPlanRepository  menuplan.MenuPlanRepository
		recipeRepository    recipe.RecipeRepository
		inventoryRepository inventory.InventoryRepository
		inventoryService    inventory.InventoryService
	}

	// aggregate accumulates one ingredient across all uncooked meals, keyed by
	// normalized name. Unit and category come from the first occurrence.
	aggregate struct {
		name     string
		total    decimal.Decimal
		unit     string
		category string
		recipes  []string
	}
)

func NewShoppingListService(
	menuPlanRepository menuplan.MenuPlanRepository,
	recipeRepository recipe.RecipeRepository,
	inventoryRepository inventory.InventoryRepository,
	inventoryService inventory.InventoryService,
) ShoppingListService {
	return &shoppingListService{
		menuPlanRepository:  menuPlanRepository,
		recipeRepository:    recipeRepository,
		inventoryRepository: inventoryRepository,
		inventoryService:    inventoryService,
	}
}

// GenerateList nets the ingredient needs of a plan's uncooked meals against
// current inventory. Quantities are scaled by planned vs. version servings,
// optional ingredients are skipped, and items already covered by stock are
// omitted from the groups but counted in the summary.
func (s *shoppingListService) GenerateList(ctx context.Context, menuPlanID string) (*domain.ShoppingListResponse, error) {
	if _, err := s.menuPlanRepository.GetPlanByID(ctx, menuPlanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuPlanNotFound
		}
		return nil, err
	}

	meals, err := s.menuPlanRepository.GetUncookedMeals(ctx, menuPlanID)
	if err != nil {
		return nil, err
	}

	aggregates := make(map[string]*aggregate)
	order := make([]string, 0)

	for _, meal := range meals {
		if meal.Recipe == nil {
			continue
		}
		version, err := s.recipeRepository.GetVersion(ctx, meal.RecipeID.String(), meal.Recipe.CurrentVersion)
		if err != nil {
			return nil, err
		}

		scale := decimal.NewFromInt(1)
		if version.Servings > 0 && meal.ServingsPlanned > 0 {
			scale = decimal.NewFromInt(int64(meal.ServingsPlanned)).
				Div(decimal.NewFromInt(int64(version.Servings)))
		}

		for _, ing := range version.Ingredients {
			if ing.IsOptional {
				continue
			}
			key := utils.NormalizeName(ing.Name)
			agg, ok := aggregates[key]
			if !ok {
				category := ing.Category
				if category == "" {
					category = "other"
				}
				agg = &aggregate{
					name:     ing.Name,
					unit:     ing.Unit,
					category: category,
				}
				aggregates[key] = agg
				order = append(order, key)
			}
			agg.total = agg.total.Add(ing.Quantity.Mul(scale))
			if !contains(agg.recipes, meal.Recipe.Title) {
				agg.recipes = append(agg.recipes, meal.Recipe.Title)
			}
		}
	}

	groups := make(map[string][]domain.ShoppingListItem)
	totalItems := 0
	toBuy := 0
	inStock := 0

	for _, key := range order {
		agg := aggregates[key]
		totalItems++

		stock := decimal.Zero
		status := domain.StatusNotInInventory
		item, err := s.inventoryRepository.FindItemByName(ctx, agg.name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if item != nil {
			stock = item.Quantity
			status = domain.StatusNeedToBuy
		}

		net := agg.total.Sub(stock)
		if net.IsNegative() || net.IsZero() {
			inStock++
			continue
		}
		toBuy++

		groups[agg.category] = append(groups[agg.category], domain.ShoppingListItem{
			Name:             agg.name,
			TotalNeeded:      agg.total,
			CurrentStock:     stock,
			NetNeeded:        net,
			Unit:             agg.unit,
			Category:         agg.category,
			Status:           status,
			NeededForRecipes: agg.recipes,
		})
	}

	for category := range groups {
		items := groups[category]
		sort.Slice(items, func(i, j int) bool {
			return utils.NormalizeName(items[i].Name) < utils.NormalizeName(items[j].Name)
		})
		groups[category] = items
	}

	return &domain.ShoppingListResponse{
		MenuPlanID:  menuPlanID,
		Groups:      groups,
		TotalItems:  totalItems,
		ToBuyItems:  toBuy,
		InStock:     inStock,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *shoppingListService) MarkPurchased(ctx context.Context, req domain.MarkPurchasedRequest, userID string) (*entities.InventoryItem, error) {
	return s.inventoryService.AddPurchase(ctx, req, userID)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
