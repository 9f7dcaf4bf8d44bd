package db

import (
	"errors"

	"gorm.io/gorm"
)

type ResponseRepo struct {
	conn *gorm.DB
}

func NewResponseRepo(conn *gorm.DB) *ResponseRepo {
	return &ResponseRepo{conn: conn}
}

func (r *ResponseRepo) WithTx(tx *gorm.DB) *ResponseRepo {
	return &ResponseRepo{conn: tx}
}

func (r *ResponseRepo) Create(response *PollResponse) error {
	return r.conn.Create(response).Error
}

func (r *ResponseRepo) ByUserAndPoll(userID, pollID uint) (*PollResponse, error) {
	var response PollResponse
	err := r.conn.Where("user_id = ? AND poll_id = ?", userID, pollID).First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

func (r *ResponseRepo) ExistsByUserAndPoll(userID, pollID uint) (bool, error) {
	var count int64
	err := r.conn.Model(&PollResponse{}).
		Where("user_id = ? AND poll_id = ?", userID, pollID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResponseRepo) ByPoll(pollID uint) ([]PollResponse, error) {
	var responses []PollResponse
	err := r.conn.Where("poll_id = ?", pollID).Order("id").Find(&responses).Error
	return responses, err
}

func (r *ResponseRepo) CountByPoll(pollID uint) (int64, error) {
	var count int64
	err := r.conn.Model(&PollResponse{}).Where("poll_id = ?", pollID).Count(&count).Error
	return count, err
}

func (r *ResponseRepo) CountByOption(optionID uint) (int64, error) {
	var count int64
	err := r.conn.Model(&PollResponse{}).Where("poll_option_id = ?", optionID).Count(&count).Error
	return count, err
}

// DistinctPollsByUser returns the set of polls the user has voted in.
func (r *ResponseRepo) DistinctPollsByUser(userID uint) ([]Poll, error) {
	var polls []Poll
	err := r.conn.Model(&Poll{}).
		Distinct("polls.*").
		Joins("JOIN poll_responses ON poll_responses.poll_id = polls.id").
		Where("poll_responses.user_id = ?", userID).
		Order("polls.id").
		Find(&polls).Error
	return polls, err
}
