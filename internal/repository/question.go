package repository

import (
	"context"
	"errors"

	"stackit/internal/models"

	"gorm.io/gorm"
)

func (r *gormRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	return r.conn(ctx).Omit("Author").Create(question).Error
}

func (r *gormRepository) FindQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := r.conn(ctx).Preload("Author").First(&question, id).Error; err != nil {
		return nil, translate(err)
	}
	return &question, nil
}

// ListQuestions returns questions newest first, optionally only those linked
// to a tag with exactly this name.
func (r *gormRepository) ListQuestions(ctx context.Context, tag string) ([]models.Question, error) {
	query := r.conn(ctx).Model(&models.Question{}).Preload("Author")
	if tag != "" {
		query = query.
			Joins("JOIN question_tags ON question_tags.question_id = questions.id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	var questions []models.Question
	err := query.Order("questions.created_at DESC, questions.id DESC").Find(&questions).Error
	return questions, err
}

// DeleteQuestion removes the question with its answers, their votes and its tag links.
func (r *gormRepository) DeleteQuestion(ctx context.Context, id uint) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("question_id = ?", id)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionTag{}).Error; err != nil {
			return err
		}
		return requireRows(tx.Delete(&models.Question{}, id))
	})
}

func (r *gormRepository) AnswerCounts(ctx context.Context, questionIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(questionIDs))
	if len(questionIDs) == 0 {
		return counts, nil
	}

	type countResult struct {
		QuestionID uint
		Count      int64
	}
	var results []countResult
	err := r.conn(ctx).Model(&models.Answer{}).
		Select("question_id, COUNT(*) AS count").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.QuestionID] = res.Count
	}
	return counts, nil
}

// TagNames maps each question id to its tag names in the order they were linked.
func (r *gormRepository) TagNames(ctx context.Context, questionIDs []uint) (map[uint][]string, error) {
	names := make(map[uint][]string, len(questionIDs))
	if len(questionIDs) == 0 {
		return names, nil
	}

	type tagRow struct {
		QuestionID uint
		Name       string
	}
	var rows []tagRow
	err := r.conn(ctx).Model(&models.QuestionTag{}).
		Select("question_tags.question_id, tags.name").
		Joins("JOIN tags ON tags.id = question_tags.tag_id").
		Where("question_tags.question_id IN ?", questionIDs).
		Order("question_tags.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.QuestionID] = append(names[row.QuestionID], row.Name)
	}
	return names, nil
}

func (r *gormRepository) FindOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.conn(ctx).Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name, Color: models.DefaultTagColor}
	if err := r.conn(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *gormRepository) LinkTag(ctx context.Context, questionID, tagID uint) error {
	link := models.QuestionTag{QuestionID: questionID, TagID: tagID}
	return r.conn(ctx).Omit("Question", "Tag").Create(&link).Error
}

func (r *gormRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.conn(ctx).Order("id ASC").Find(&tags).Error
	return tags, err
}
