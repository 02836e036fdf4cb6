package handlers

import (
	"context"

	"stackit/internal/models"
	"stackit/internal/services"
)

// Handlers depend on these narrow views of the services.

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type QuestionService interface {
	List(ctx context.Context, tag string) ([]services.QuestionSummary, error)
	Create(ctx context.Context, author *models.User, title, description string, tags []string) (*models.Question, error)
	Get(ctx context.Context, id uint) (*services.QuestionDetail, error)
	Delete(ctx context.Context, id uint) error
	Tags(ctx context.Context) ([]models.Tag, error)
}

type AnswerService interface {
	Create(ctx context.Context, user *models.User, questionID uint, description string) (*models.Answer, error)
	Vote(ctx context.Context, user *models.User, answerID uint, voteType string) (int64, error)
	Accept(ctx context.Context, user *models.User, answerID uint) error
	Delete(ctx context.Context, answerID uint) error
}

type NotificationService interface {
	List(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type UserService interface {
	SetRole(ctx context.Context, userID uint, role string) (*models.User, error)
}
