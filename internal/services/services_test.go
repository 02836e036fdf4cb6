package services

import (
	"context"
	"testing"

	"stackit/internal/models"
	"stackit/internal/utils"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo      *memRepository
	cache     *utils.Cache
	auth      *AuthService
	users     *UserService
	questions *QuestionService
	answers   *AnswerService
	notify    *NotificationService
}

func newFixture() *fixture {
	repo := newMemRepository()
	cache := utils.NewCache(100)
	return &fixture{
		repo:      repo,
		cache:     cache,
		auth:      NewAuthService(repo),
		users:     NewUserService(repo),
		questions: NewQuestionService(repo, cache, 1),
		answers:   NewAnswerService(repo, cache),
		notify:    NewNotificationService(repo),
	}
}

func (f *fixture) register(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), name, email, "secret123")
	require.NoError(t, err)
	return u
}

func (f *fixture) ask(t *testing.T, author *models.User, title string, tags ...string) *models.Question {
	t.Helper()
	if tags == nil {
		tags = []string{}
	}
	q, err := f.questions.Create(context.Background(), author, title, "A description that is long enough.", tags)
	require.NoError(t, err)
	return q
}

func (f *fixture) answer(t *testing.T, author *models.User, q *models.Question) *models.Answer {
	t.Helper()
	a, err := f.answers.Create(context.Background(), author, q.ID, "Try turning it off and on.")
	require.NoError(t, err)
	return a
}
