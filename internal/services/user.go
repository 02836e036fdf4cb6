package services

import (
	"context"

	"stackit/internal/models"
	"stackit/internal/repository"
	"stackit/internal/validation"
)

// UserService covers account administration.
type UserService struct {
	repo repository.Repository
}

func NewUserService(repo repository.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// SetRole changes a user's role to guest, user or admin.
func (s *UserService) SetRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	role, err = validation.Role(role)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateUserRole(ctx, user.ID, models.Role(role)); err != nil {
		return nil, notFound(err)
	}
	user.Role = models.Role(role)
	return user, nil
}

// MakeAdmin promotes the account registered under email.
func (s *UserService) MakeAdmin(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err)
	}
	return s.SetRole(ctx, user.ID, string(models.RoleAdmin))
}
