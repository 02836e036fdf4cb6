package repository

import (
	"context"

	"stackit/internal/models"
)

func (r *gormRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.conn(ctx).Omit("User").Create(n).Error
}

func (r *gormRepository) FindNotification(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.conn(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (r *gormRepository) ListNotifications(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *gormRepository) MarkNotificationRead(ctx context.Context, id uint) error {
	res := r.conn(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	return requireRows(res)
}

func (r *gormRepository) MarkAllNotificationsRead(ctx context.Context, userID uint) (int64, error) {
	res := r.conn(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *gormRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
