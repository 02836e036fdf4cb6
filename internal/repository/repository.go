// Package repository is the storage layer. All reads and writes go through
// the Repository interface; the gorm implementation backs it with PostgreSQL.
package repository

import (
	"context"
	"errors"

	"stackit/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id or key matches nothing.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. A non-nil error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id uint, role models.Role) error

	CreateQuestion(ctx context.Context, question *models.Question) error
	FindQuestion(ctx context.Context, id uint) (*models.Question, error)
	ListQuestions(ctx context.Context, tag string) ([]models.Question, error)
	DeleteQuestion(ctx context.Context, id uint) error
	AnswerCounts(ctx context.Context, questionIDs []uint) (map[uint]int64, error)
	TagNames(ctx context.Context, questionIDs []uint) (map[uint][]string, error)

	FindOrCreateTag(ctx context.Context, name string) (*models.Tag, error)
	LinkTag(ctx context.Context, questionID, tagID uint) error
	ListTags(ctx context.Context) ([]models.Tag, error)

	CreateAnswer(ctx context.Context, answer *models.Answer) error
	FindAnswer(ctx context.Context, id uint) (*models.Answer, error)
	ListAnswers(ctx context.Context, questionID uint) ([]models.Answer, error)
	DeleteAnswer(ctx context.Context, id uint) error
	ClearAccepted(ctx context.Context, questionID uint) error
	SetAccepted(ctx context.Context, answerID uint) error

	FindVote(ctx context.Context, answerID, userID uint) (*models.Vote, error)
	CreateVote(ctx context.Context, vote *models.Vote) error
	UpdateVoteType(ctx context.Context, id uint, voteType models.VoteType) error
	DeleteVote(ctx context.Context, id uint) error
	VoteTallies(ctx context.Context, answerIDs []uint) (map[uint]int64, error)

	CreateNotification(ctx context.Context, n *models.Notification) error
	FindNotification(ctx context.Context, id uint) (*models.Notification, error)
	ListNotifications(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id uint) error
	MarkAllNotificationsRead(ctx context.Context, userID uint) (int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// New wraps a gorm connection.
func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// requireRows turns an update or delete that touched nothing into ErrNotFound.
func requireRows(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
