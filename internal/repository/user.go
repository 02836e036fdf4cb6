package repository

import (
	"context"

	"stackit/internal/models"
)

func (r *gormRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *gormRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.conn(ctx).Create(user).Error
}

func (r *gormRepository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.conn(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *gormRepository) UpdateUserRole(ctx context.Context, id uint, role models.Role) error {
	res := r.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	return requireRows(res)
}
