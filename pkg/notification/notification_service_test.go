package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/pkg/inventory"
	"mealplanner/pkg/notification"
	"mealplanner/pkg/user"
)

type fixture struct {
	db                  *gorm.DB
	notificationService notification.NotificationService
	inventoryService    inventory.InventoryService
	userID              uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.InventoryItem{},
		&entities.InventoryHistory{},
		&entities.Notification{},
	))

	member := &entities.User{
		ID:       uuid.New(),
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "hashed",
		Role:     domain.RoleUser,
		IsActive: true,
	}
	require.NoError(t, db.Create(member).Error)

	settings := domain.DefaultEngineSettings()
	inventoryRepository := inventory.NewInventoryRepository(db)
	return &fixture{
		db: db,
		notificationService: notification.NewNotificationService(
			notification.NewNotificationRepository(db),
			inventoryRepository,
			user.NewUserRepository(db),
			settings,
		),
		inventoryService: inventory.NewInventoryService(db, inventoryRepository, settings),
		userID:           member.ID,
	}
}

func (f *fixture) addItem(t *testing.T, name string, qty, minStock int64, expiration *time.Time) {
	t.Helper()
	_, err := f.inventoryService.AddItem(context.Background(), domain.AddInventoryItemRequest{
		ItemName:       name,
		Quantity:       decimal.NewFromInt(qty),
		MinimumStock:   decimal.NewFromInt(minStock),
		ExpirationDate: expiration,
	}, f.userID.String())
	require.NoError(t, err)
}

func TestGenerateStockAlerts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	soon := time.Now().AddDate(0, 0, 2)
	f.addItem(t, "Eggs", 2, 6, nil)       // low stock
	f.addItem(t, "Yogurt", 4, 0, &soon)   // expiring
	f.addItem(t, "Pasta", 10, 2, nil)     // fine

	created, err := f.notificationService.GenerateStockAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	notifications, err := f.notificationService.GetNotifications(ctx, f.userID.String(), false)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
}

func TestGenerateStockAlertsDeduplicates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.addItem(t, "Eggs", 2, 6, nil)

	created, err := f.notificationService.GenerateStockAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// unread alert for the same item: second scan adds nothing
	created, err = f.notificationService.GenerateStockAlerts(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)

	// once read, the next scan may alert again
	require.NoError(t, f.notificationService.MarkAllRead(ctx, f.userID.String()))
	created, err = f.notificationService.GenerateStockAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.addItem(t, "Eggs", 2, 6, nil)
	f.addItem(t, "Milk", 0, 1, nil)

	_, err := f.notificationService.GenerateStockAlerts(ctx)
	require.NoError(t, err)

	count, err := f.notificationService.GetUnreadCount(ctx, f.userID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count.UnreadCount)

	notifications, err := f.notificationService.GetNotifications(ctx, f.userID.String(), true)
	require.NoError(t, err)
	require.NotEmpty(t, notifications)

	require.NoError(t, f.notificationService.MarkRead(ctx, notifications[0].ID, f.userID.String()))

	count, err = f.notificationService.GetUnreadCount(ctx, f.userID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count.UnreadCount)
}

func TestMarkReadWrongUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.addItem(t, "Eggs", 2, 6, nil)
	_, err := f.notificationService.GenerateStockAlerts(ctx)
	require.NoError(t, err)

	notifications, err := f.notificationService.GetNotifications(ctx, f.userID.String(), true)
	require.NoError(t, err)
	require.NotEmpty(t, notifications)

	stranger := uuid.New().String()
	err = f.notificationService.MarkRead(ctx, notifications[0].ID, stranger)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestDeleteNotification(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.addItem(t, "Eggs", 2, 6, nil)
	_, err := f.notificationService.GenerateStockAlerts(ctx)
	require.NoError(t, err)

	notifications, err := f.notificationService.GetNotifications(ctx, f.userID.String(), false)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	require.NoError(t, f.notificationService.DeleteNotification(ctx, notifications[0].ID, f.userID.String()))
	assert.ErrorIs(t,
		f.notificationService.DeleteNotification(ctx, notifications[0].ID, f.userID.String()),
		domain.ErrNotificationNotFound)
}
