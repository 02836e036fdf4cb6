package repository

import (
	"context"

	"stackit/internal/models"

	"gorm.io/gorm"
)

func (r *gormRepository) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	return r.conn(ctx).Omit("Question", "Author").Create(answer).Error
}

func (r *gormRepository) FindAnswer(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	if err := r.conn(ctx).First(&answer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &answer, nil
}

// ListAnswers returns a question's answers oldest first with their authors.
func (r *gormRepository) ListAnswers(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.conn(ctx).Preload("Author").
		Where("question_id = ?", questionID).
		Order("created_at ASC, id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *gormRepository) DeleteAnswer(ctx context.Context, id uint) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return requireRows(tx.Delete(&models.Answer{}, id))
	})
}

func (r *gormRepository) ClearAccepted(ctx context.Context, questionID uint) error {
	return r.conn(ctx).Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Update("is_accepted", false).Error
}

func (r *gormRepository) SetAccepted(ctx context.Context, answerID uint) error {
	res := r.conn(ctx).Model(&models.Answer{}).Where("id = ?", answerID).Update("is_accepted", true)
	return requireRows(res)
}
