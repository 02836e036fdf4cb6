package services

import (
	"context"
	"errors"
	"fmt"

	"stackit/internal/models"
	"stackit/internal/repository"
	"stackit/internal/utils"
	"stackit/internal/validation"
)

type AnswerService struct {
	repo  repository.Repository
	cache *utils.Cache
}

func NewAnswerService(repo repository.Repository, cache *utils.Cache) *AnswerService {
	return &AnswerService{repo: repo, cache: cache}
}

// Create posts an answer and notifies the question's author unless they
// answered their own question.
func (s *AnswerService) Create(ctx context.Context, user *models.User, questionID uint, description string) (*models.Answer, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	question, err := s.repo.FindQuestion(ctx, questionID)
	if err != nil {
		return nil, notFound(err)
	}

	description, err = validation.Answer(description)
	if err != nil {
		return nil, err
	}

	answer := &models.Answer{
		Description: description,
		QuestionID:  question.ID,
		UserID:      user.ID,
	}
	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.CreateAnswer(ctx, answer); err != nil {
			return err
		}
		if question.UserID == user.ID {
			return nil
		}
		return tx.CreateNotification(ctx, &models.Notification{
			UserID:  question.UserID,
			Message: truncateMessage("New answer on your question: " + question.Title),
		})
	})
	if err != nil {
		return nil, err
	}

	s.cache.Clear()
	return answer, nil
}

// Vote toggles the caller's vote on an answer: the same type twice removes
// the vote, the opposite type switches it. It returns the new tally.
func (s *AnswerService) Vote(ctx context.Context, user *models.User, answerID uint, voteType string) (int64, error) {
	if user == nil {
		return 0, ErrUnauthenticated
	}

	answer, err := s.repo.FindAnswer(ctx, answerID)
	if err != nil {
		return 0, notFound(err)
	}

	voteType, err = validation.VoteType(voteType)
	if err != nil {
		return 0, err
	}
	vt := models.VoteType(voteType)

	var tally int64
	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		existing, err := tx.FindVote(ctx, answer.ID, user.ID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			err = tx.CreateVote(ctx, &models.Vote{AnswerID: answer.ID, UserID: user.ID, VoteType: vt})
		case err != nil:
			return err
		case existing.VoteType == vt:
			err = tx.DeleteVote(ctx, existing.ID)
		default:
			err = tx.UpdateVoteType(ctx, existing.ID, vt)
		}
		if err != nil {
			return fmt.Errorf("record vote: %w", err)
		}

		tallies, err := tx.VoteTallies(ctx, []uint{answer.ID})
		if err != nil {
			return err
		}
		tally = tallies[answer.ID]
		return nil
	})
	if err != nil {
		return 0, err
	}
	return tally, nil
}

// Accept marks the answer as the accepted one for its question. Only the
// question's author may do so; every sibling loses its accepted flag.
func (s *AnswerService) Accept(ctx context.Context, user *models.User, answerID uint) error {
	if user == nil {
		return ErrUnauthenticated
	}

	answer, err := s.repo.FindAnswer(ctx, answerID)
	if err != nil {
		return notFound(err)
	}
	question, err := s.repo.FindQuestion(ctx, answer.QuestionID)
	if err != nil {
		return notFound(err)
	}

	if question.UserID != user.ID {
		return forbidden("Only question author can accept answers")
	}

	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.ClearAccepted(ctx, question.ID); err != nil {
			return err
		}
		if err := tx.SetAccepted(ctx, answer.ID); err != nil {
			return err
		}
		if answer.UserID == user.ID {
			return nil
		}
		return tx.CreateNotification(ctx, &models.Notification{
			UserID:  answer.UserID,
			Message: truncateMessage("Your answer was accepted for: " + question.Title),
		})
	})
}

// Delete removes an answer and its votes.
func (s *AnswerService) Delete(ctx context.Context, answerID uint) error {
	if err := s.repo.DeleteAnswer(ctx, answerID); err != nil {
		return notFound(err)
	}
	s.cache.Clear()
	return nil
}
