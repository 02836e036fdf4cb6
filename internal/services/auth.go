package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"stackit/internal/models"
	"stackit/internal/repository"
	"stackit/internal/utils"
	"stackit/internal/validation"
)

type AuthService struct {
	repo repository.Repository
}

func NewAuthService(repo repository.Repository) *AuthService {
	return &AuthService{repo: repo}
}

// Register creates an account. The first account ever created becomes admin.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name, err := validation.Name(name)
	if err != nil {
		return nil, err
	}
	email, err = validation.Email(email)
	if err != nil {
		return nil, err
	}
	password, err = validation.Password(password)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user *models.User
	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if _, err := tx.FindUserByEmail(ctx, email); err == nil {
			return &validation.Error{Message: "Email already registered"}
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		count, err := tx.CountUsers(ctx)
		if err != nil {
			return err
		}
		role := models.RoleUser
		if count == 0 {
			role = models.RoleAdmin
		}

		user = &models.User{
			Name:     name,
			Email:    email,
			Password: hash,
			Role:     role,
		}
		return tx.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[AUTH] registered user %d (%s) as %s", user.ID, user.Email, user.Role)
	return user, nil
}

// Login checks the credentials and returns the matching user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email, err := validation.Credentials(email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser loads the user a session points at.
func (s *AuthService) CurrentUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}
