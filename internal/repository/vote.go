package repository

import (
	"context"

	"stackit/internal/models"
)

func (r *gormRepository) FindVote(ctx context.Context, answerID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.conn(ctx).Where("answer_id = ? AND user_id = ?", answerID, userID).First(&vote).Error
	if err != nil {
		return nil, translate(err)
	}
	return &vote, nil
}

func (r *gormRepository) CreateVote(ctx context.Context, vote *models.Vote) error {
	return r.conn(ctx).Omit("Answer", "User").Create(vote).Error
}

func (r *gormRepository) UpdateVoteType(ctx context.Context, id uint, voteType models.VoteType) error {
	res := r.conn(ctx).Model(&models.Vote{}).Where("id = ?", id).Update("vote_type", voteType)
	return requireRows(res)
}

func (r *gormRepository) DeleteVote(ctx context.Context, id uint) error {
	return requireRows(r.conn(ctx).Delete(&models.Vote{}, id))
}

// VoteTallies returns upvotes minus downvotes per answer. Answers without
// votes are absent from the map.
func (r *gormRepository) VoteTallies(ctx context.Context, answerIDs []uint) (map[uint]int64, error) {
	tallies := make(map[uint]int64, len(answerIDs))
	if len(answerIDs) == 0 {
		return tallies, nil
	}

	type tallyResult struct {
		AnswerID uint
		Tally    int64
	}
	var results []tallyResult
	err := r.conn(ctx).Model(&models.Vote{}).
		Select("answer_id, SUM(CASE WHEN vote_type = ? THEN 1 WHEN vote_type = ? THEN -1 ELSE 0 END) AS tally",
			models.VoteUp, models.VoteDown).
		Where("answer_id IN ?", answerIDs).
		Group("answer_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		tallies[res.AnswerID] = res.Tally
	}
	return tallies, nil
}
