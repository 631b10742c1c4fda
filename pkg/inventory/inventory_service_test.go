package inventory_test

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
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.InventoryItem{}, &entities.InventoryHistory{}))
	return db
}

func newService(t *testing.T) (inventory.InventoryService, *gorm.DB) {
	db := setupTestDB(t)
	return inventory.NewInventoryService(db, inventory.NewInventoryRepository(db), domain.DefaultEngineSettings()), db
}

const testUserID = "7b7e3a46-1c5b-4a51-9c2c-3f6b6f1f2a10"

func TestAddItemWritesInitialHistory(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	item, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "Milk",
		Quantity: decimal.NewFromInt(2),
		Unit:     "l",
		Category: "dairy",
		Location: "fridge",
	}, testUserID)
	require.NoError(t, err)

	history, err := service.GetItemHistory(ctx, item.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ChangeTypePurchased, history[0].ChangeType)
	assert.True(t, history[0].QuantityBefore.IsZero())
	assert.True(t, history[0].QuantityAfter.Equal(decimal.NewFromInt(2)))
}

func TestUpdateItemQuantityAppendsAdjustment(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	item, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "Flour",
		Quantity: decimal.NewFromInt(5),
		Unit:     "kg",
	}, testUserID)
	require.NoError(t, err)

	newQty := decimal.NewFromInt(3)
	updated, err := service.UpdateItem(ctx, item.ID.String(), domain.UpdateInventoryItemRequest{
		Quantity: &newQty,
		Reason:   "spilled some",
	}, testUserID)
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(newQty))

	history, err := service.GetItemHistory(ctx, item.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ChangeTypeAdjusted, history[0].ChangeType)
	assert.Equal(t, "spilled some", history[0].Reason)
}

func TestUpdateItemWithoutQuantityChangeLeavesNoHistory(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	item, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "Rice",
		Quantity: decimal.NewFromInt(1),
		Unit:     "kg",
	}, testUserID)
	require.NoError(t, err)

	notes := "long grain"
	_, err = service.UpdateItem(ctx, item.ID.String(), domain.UpdateInventoryItemRequest{Notes: &notes}, testUserID)
	require.NoError(t, err)

	history, err := service.GetItemHistory(ctx, item.ID.String())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUpdateItemRejectsNegativeQuantity(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	item, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "Sugar",
		Quantity: decimal.NewFromInt(1),
	}, testUserID)
	require.NoError(t, err)

	negative := decimal.NewFromInt(-1)
	_, err = service.UpdateItem(ctx, item.ID.String(), domain.UpdateInventoryItemRequest{Quantity: &negative}, testUserID)
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)
}

func TestDeductClampsAtZero(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	item, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "Butter",
		Quantity: decimal.NewFromInt(1),
		Unit:     "pack",
	}, testUserID)
	require.NoError(t, err)

	change, err := service.Deduct(ctx, "butter", decimal.NewFromInt(5), "Used for Cookies", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, change)
	assert.Equal(t, "Butter", change.ItemName)

	fresh, err := service.GetItem(ctx, item.ID.String())
	require.NoError(t, err)
	assert.True(t, fresh.Quantity.IsZero(), "quantity clamps at zero instead of going negative")

	history, err := service.GetItemHistory(ctx, item.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ChangeTypeAutoDeducted, history[0].ChangeType)
}

func TestDeductUntrackedNameIsNoOp(t *testing.T) {
	service, _ := newService(t)

	change, err := service.Deduct(context.Background(), "salt", decimal.NewFromInt(1), "Used for Soup", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, change)
}

func TestFindByNameIsCaseAndSpaceInsensitive(t *testing.T) {
	service, db := newService(t)
	ctx := context.Background()

	_, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "Olive Oil",
		Quantity: decimal.NewFromInt(1),
	}, testUserID)
	require.NoError(t, err)

	repo := inventory.NewInventoryRepository(db)
	item, err := repo.FindItemByName(ctx, "  OLIVE OIL ")
	require.NoError(t, err)
	assert.Equal(t, "Olive Oil", item.ItemName)
}

func TestAddPurchaseTopsUpExistingItem(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	item, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName: "Milk",
		Quantity: decimal.NewFromInt(1),
		Unit:     "l",
	}, testUserID)
	require.NoError(t, err)

	topped, err := service.AddPurchase(ctx, domain.MarkPurchasedRequest{
		ItemName: "milk",
		Quantity: decimal.NewFromInt(2),
	}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, topped.ID)
	assert.True(t, topped.Quantity.Equal(decimal.NewFromInt(3)))

	history, err := service.GetItemHistory(ctx, item.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ChangeTypePurchased, history[0].ChangeType)
}

func TestAddPurchaseCreatesUnknownItem(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	item, err := service.AddPurchase(ctx, domain.MarkPurchasedRequest{
		ItemName: "Basil",
		Quantity: decimal.NewFromInt(1),
		Unit:     "bunch",
		Category: "produce",
	}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Basil", item.ItemName)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(1)))
}

func TestGetExpiringItems(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	soon := time.Now().AddDate(0, 0, 3)
	far := time.Now().AddDate(0, 0, 60)

	_, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName:       "Yogurt",
		Quantity:       decimal.NewFromInt(4),
		ExpirationDate: &soon,
	}, testUserID)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName:       "Canned Beans",
		Quantity:       decimal.NewFromInt(2),
		ExpirationDate: &far,
	}, testUserID)
	require.NoError(t, err)

	expiring, err := service.GetExpiringItems(ctx)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "Yogurt", expiring[0].ItemName)
	assert.LessOrEqual(t, expiring[0].DaysUntilExpiration, 3)
}

func TestListItemsLowStockFilter(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName:     "Eggs",
		Quantity:     decimal.NewFromInt(2),
		MinimumStock: decimal.NewFromInt(6),
	}, testUserID)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, domain.AddInventoryItemRequest{
		ItemName:     "Pasta",
		Quantity:     decimal.NewFromInt(10),
		MinimumStock: decimal.NewFromInt(2),
	}, testUserID)
	require.NoError(t, err)

	low, err := service.ListItems(ctx, domain.ListInventoryRequest{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Eggs", low[0].ItemName)
}
