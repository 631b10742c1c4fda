package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/internal/utils/mailing"
	"mealplanner/pkg/inventory"
	"mealplanner/pkg/user"
)

type (
	NotificationService interface {
		GetNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.NotificationResponse, error)
		GetUnreadCount(ctx context.Context, userID string) (domain.UnreadCountResponse, error)
		MarkRead(ctx context.Context, id, userID string) error
		MarkAllRead(ctx context.Context, userID string) error
		DeleteNotification(ctx context.Context, id, userID string) error
		GenerateStockAlerts(ctx context.Context) (int, error)
		SendDigest(ctx context.Context, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
		inventoryRepository    inventory.InventoryRepository
		userRepository         user.UserRepository
		settings               domain.EngineSettings
	}
)

func NewNotificationService(
	notificationRepository NotificationRepository,
	inventoryRepository inventory.InventoryRepository,
	userRepository user.UserRepository,
	settings domain.EngineSettings,
) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		inventoryRepository:    inventoryRepository,
		userRepository:         userRepository,
		settings:               settings,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.NotificationResponse, error) {
	notifications, err := s.notificationRepository.GetNotifications(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, toNotificationResponse(n))
	}
	return responses, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID string) (domain.UnreadCountResponse, error) {
	count, err := s.notificationRepository.GetUnreadCount(ctx, userID)
	if err != nil {
		return domain.UnreadCountResponse{}, err
	}
	return domain.UnreadCountResponse{UnreadCount: count}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.notificationRepository.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllRead(ctx, userID)
}

func (s *notificationService) DeleteNotification(ctx context.Context, id, userID string) error {
	if err := s.notificationRepository.DeleteNotification(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// GenerateStockAlerts scans inventory for low-stock and soon-to-expire items
// and fans a notification out to every active user. An item that already has
// an unread alert of the same type is skipped, so repeated scans do not stack
// duplicates. Returns the number of notifications created.
func (s *notificationService) GenerateStockAlerts(ctx context.Context) (int, error) {
	users, err := s.userRepository.GetActiveUsers(ctx)
	if err != nil {
		return 0, err
	}

	lowStock, err := s.inventoryRepository.ListItems(ctx, "", "", true)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().AddDate(0, 0, s.settings.ExpirationWarningDays)
	expiring, err := s.inventoryRepository.GetExpiringItems(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, u := range users {
		for _, item := range lowStock {
			n, err := s.createIfNew(ctx, u.ID, domain.NotificationLowStock,
				"Low stock",
				fmt.Sprintf("%s is running low (%s %s left)", item.ItemName, item.Quantity.String(), item.Unit),
				item.ItemName)
			if err != nil {
				return created, err
			}
			created += n
		}
		for _, item := range expiring {
			n, err := s.createIfNew(ctx, u.ID, domain.NotificationExpiring,
				"Expiring soon",
				fmt.Sprintf("%s expires on %s", item.ItemName, item.ExpirationDate.Format("2006-01-02")),
				item.ItemName)
			if err != nil {
				return created, err
			}
			created += n
		}
	}
	return created, nil
}

func (s *notificationService) createIfNew(ctx context.Context, userID uuid.UUID, notifType, title, message, itemName string) (int, error) {
	exists, err := s.notificationRepository.HasUnreadLike(ctx, userID.String(), notifType, itemName)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}
	if err := s.notificationRepository.CreateNotification(ctx, &entities.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Link:    "/inventory",
	}); err != nil {
		return 0, err
	}
	return 1, nil
}

// SendDigest mails the user's unread notifications as a plain-text summary.
// A failed send is logged and returned; notifications stay unread either way.
func (s *notificationService) SendDigest(ctx context.Context, userID string) error {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	unread, err := s.notificationRepository.GetNotifications(ctx, userID, true)
	if err != nil {
		return err
	}
	if len(unread) == 0 {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\nYou have %d unread kitchen alerts:\n\n", u.Name, len(unread))
	for _, n := range unread {
		fmt.Fprintf(&body, "- [%s] %s: %s\n", n.Type, n.Title, n.Message)
	}

	if err := mailing.SendMail(u.Email, "Your kitchen digest", body.String()); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to send notification digest")
		return err
	}
	return nil
}

func toNotificationResponse(n *entities.Notification) domain.NotificationResponse {
	return domain.NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
