package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"stackit/internal/models"
	"stackit/internal/repository"
	"stackit/internal/utils"
	"stackit/internal/validation"
)

const (
	questionsCacheTTL = 60 * time.Second
	tagsCacheTTL      = 300 * time.Second
	tagsCacheKey      = "tags"
)

// QuestionSummary is one row of the question list.
type QuestionSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
	AnswersCount int64     `json:"answers_count"`
	Tags         []string  `json:"tags"`
}

// AnswerView is an answer with its vote tally.
type AnswerView struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	AuthorID    uint      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	IsAccepted  bool      `json:"is_accepted"`
	Votes       int64     `json:"votes"`
}

// QuestionDetail is a question with tags and every answer.
type QuestionDetail struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Author      string       `json:"author"`
	AuthorID    uint         `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	Tags        []string     `json:"tags"`
	Answers     []AnswerView `json:"answers"`
}

type QuestionService struct {
	repo  repository.Repository
	cache *utils.Cache
	// notifyUserID receives "new question posted" notifications.
	notifyUserID uint
}

func NewQuestionService(repo repository.Repository, cache *utils.Cache, notifyUserID uint) *QuestionService {
	return &QuestionService{
		repo:         repo,
		cache:        cache,
		notifyUserID: notifyUserID,
	}
}

func questionsCacheKey(tag string) string {
	if tag == "" {
		tag = "all"
	}
	return "questions_" + tag
}

// List returns questions newest first, optionally filtered by exact tag name.
func (s *QuestionService) List(ctx context.Context, tag string) ([]QuestionSummary, error) {
	cacheKey := questionsCacheKey(tag)
	if cached, ok := s.cache.Get(cacheKey, questionsCacheTTL); ok {
		if summaries, ok := cached.([]QuestionSummary); ok {
			return summaries, nil
		}
	}

	questions, err := s.repo.ListQuestions(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	counts, err := s.repo.AnswerCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}
	tagNames, err := s.repo.TagNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	summaries := make([]QuestionSummary, len(questions))
	for i, q := range questions {
		summaries[i] = QuestionSummary{
			ID:           q.ID,
			Title:        q.Title,
			Description:  q.Description,
			Author:       q.Author.Name,
			CreatedAt:    q.CreatedAt,
			AnswersCount: counts[q.ID],
			Tags:         nonNil(tagNames[q.ID]),
		}
	}

	s.cache.Set(cacheKey, summaries)
	return summaries, nil
}

// Create stores a question with its tags in one transaction. Unknown tag
// names are created on the fly.
func (s *QuestionService) Create(ctx context.Context, author *models.User, title, description string, tags []string) (*models.Question, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}

	input, err := validation.Question(title, description, tags)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		Title:       input.Title,
		Description: input.Description,
		UserID:      author.ID,
	}
	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.CreateQuestion(ctx, question); err != nil {
			return err
		}
		for _, name := range input.Tags {
			tag, err := tx.FindOrCreateTag(ctx, name)
			if err != nil {
				return fmt.Errorf("tag %q: %w", name, err)
			}
			if err := tx.LinkTag(ctx, question.ID, tag.ID); err != nil {
				return fmt.Errorf("link tag %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Clear()
	s.notifyNewQuestion(ctx, question)
	return question, nil
}

// notifyNewQuestion tells a single fixed account about every new question.
// It runs after the question is committed; failures are only logged.
func (s *QuestionService) notifyNewQuestion(ctx context.Context, question *models.Question) {
	if s.notifyUserID == 0 {
		return
	}
	if _, err := s.repo.FindUserByID(ctx, s.notifyUserID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("[NOTIFY] lookup recipient %d: %v", s.notifyUserID, err)
		}
		return
	}

	n := &models.Notification{
		UserID:  s.notifyUserID,
		Message: truncateMessage("New question posted: " + question.Title),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		log.Printf("[NOTIFY] new question %d: %v", question.ID, err)
	}
}

// Get returns the question with tags and answers, or ErrNotFound.
func (s *QuestionService) Get(ctx context.Context, id uint) (*QuestionDetail, error) {
	question, err := s.repo.FindQuestion(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	tagNames, err := s.repo.TagNames(ctx, []uint{question.ID})
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	answers, err := s.repo.ListAnswers(ctx, question.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	answerIDs := make([]uint, len(answers))
	for i, a := range answers {
		answerIDs[i] = a.ID
	}
	tallies, err := s.repo.VoteTallies(ctx, answerIDs)
	if err != nil {
		return nil, fmt.Errorf("tally votes: %w", err)
	}

	views := make([]AnswerView, len(answers))
	for i, a := range answers {
		views[i] = AnswerView{
			ID:          a.ID,
			Description: a.Description,
			Author:      a.Author.Name,
			AuthorID:    a.UserID,
			CreatedAt:   a.CreatedAt,
			IsAccepted:  a.IsAccepted,
			Votes:       tallies[a.ID],
		}
	}

	return &QuestionDetail{
		ID:          question.ID,
		Title:       question.Title,
		Description: question.Description,
		Author:      question.Author.Name,
		AuthorID:    question.UserID,
		CreatedAt:   question.CreatedAt,
		Tags:        nonNil(tagNames[question.ID]),
		Answers:     views,
	}, nil
}

// Delete removes a question with its answers, votes and tag links.
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		return notFound(err)
	}
	s.cache.Clear()
	return nil
}

// Tags lists every tag, cached for five minutes.
func (s *QuestionService) Tags(ctx context.Context) ([]models.Tag, error) {
	if cached, ok := s.cache.Get(tagsCacheKey, tagsCacheTTL); ok {
		if tags, ok := cached.([]models.Tag); ok {
			return tags, nil
		}
	}

	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	s.cache.Set(tagsCacheKey, tags)
	return tags, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// truncateMessage keeps notification text within the column limit.
func truncateMessage(msg string) string {
	const maxLen = 255
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	return string(runes[:maxLen-3]) + "..."
}
