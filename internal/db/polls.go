package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// optionOrder is the canonical option ordering: most voted first,
// insertion order breaking ties.
const optionOrder = "vote_count DESC, id ASC"

type PollRepo struct {
	conn *gorm.DB
}

func NewPollRepo(conn *gorm.DB) *PollRepo {
	return &PollRepo{conn: conn}
}

func (r *PollRepo) WithTx(tx *gorm.DB) *PollRepo {
	return &PollRepo{conn: tx}
}

func (r *PollRepo) ByID(id uint) (*Poll, error) {
	var poll Poll
	err := r.conn.
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order(optionOrder) }).
		First(&poll, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poll, nil
}

func (r *PollRepo) Exists(id uint) (bool, error) {
	var count int64
	err := r.conn.Model(&Poll{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ActiveNotExpired lists polls open for voting at the given instant.
func (r *PollRepo) ActiveNotExpired(now time.Time) ([]Poll, error) {
	var polls []Poll
	err := r.conn.
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order(optionOrder) }).
		Where("is_active = ? AND (ends_at IS NULL OR ends_at > ?)", true, now).
		Order("created_at DESC, id DESC").
		Find(&polls).Error
	return polls, err
}

func (r *PollRepo) ByAdmin(adminID uint) ([]Poll, error) {
	var polls []Poll
	err := r.conn.
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order(optionOrder) }).
		Where("admin_id = ?", adminID).
		Order("created_at DESC, id DESC").
		Find(&polls).Error
	return polls, err
}

func (r *PollRepo) ActiveByAdmin(adminID uint) ([]Poll, error) {
	var polls []Poll
	err := r.conn.
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order(optionOrder) }).
		Where("admin_id = ? AND is_active = ?", adminID, true).
		Order("created_at DESC, id DESC").
		Find(&polls).Error
	return polls, err
}

func (r *PollRepo) Create(poll *Poll) error {
	return r.conn.Create(poll).Error
}

func (r *PollRepo) Save(poll *Poll) error {
	return r.conn.Save(poll).Error
}

// Delete removes the poll with its options and responses. Deletes are
// issued explicitly so the cascade does not depend on the database
// enforcing foreign keys.
func (r *PollRepo) Delete(pollID uint) error {
	if err := r.conn.Where("poll_id = ?", pollID).Delete(&PollResponse{}).Error; err != nil {
		return err
	}
	if err := r.conn.Where("poll_id = ?", pollID).Delete(&PollOption{}).Error; err != nil {
		return err
	}
	return r.conn.Delete(&Poll{}, pollID).Error
}

type OptionRepo struct {
	conn *gorm.DB
}

func NewOptionRepo(conn *gorm.DB) *OptionRepo {
	return &OptionRepo{conn: conn}
}

func (r *OptionRepo) WithTx(tx *gorm.DB) *OptionRepo {
	return &OptionRepo{conn: tx}
}

func (r *OptionRepo) ByID(id uint) (*PollOption, error) {
	var option PollOption
	if err := r.conn.First(&option, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

func (r *OptionRepo) ByPoll(pollID uint) ([]PollOption, error) {
	var options []PollOption
	err := r.conn.Where("poll_id = ?", pollID).Order(optionOrder).Find(&options).Error
	return options, err
}

func (r *OptionRepo) Create(option *PollOption) error {
	return r.conn.Create(option).Error
}

// IncrementVoteCount bumps the counter in a single UPDATE so concurrent
// votes on different users never lose increments.
func (r *OptionRepo) IncrementVoteCount(optionID uint) error {
	return r.conn.Model(&PollOption{}).
		Where("id = ?", optionID).
		UpdateColumn("vote_count", gorm.Expr("vote_count + ?", 1)).Error
}
