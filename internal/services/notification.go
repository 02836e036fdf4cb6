package services

import (
	"context"

	"stackit/internal/models"
	"stackit/internal/repository"
)

// RecentNotificationLimit is how many notifications a list returns.
const RecentNotificationLimit = 10

type NotificationService struct {
	repo repository.Repository
}

func NewNotificationService(repo repository.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns the caller's most recent notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	notifications, err := s.repo.ListNotifications(ctx, userID, RecentNotificationLimit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// MarkRead marks one notification read. It must belong to userID.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	n, err := s.repo.FindNotification(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if n.UserID != userID {
		return forbidden("Unauthorized")
	}
	return notFound(s.repo.MarkNotificationRead(ctx, n.ID))
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllNotificationsRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
