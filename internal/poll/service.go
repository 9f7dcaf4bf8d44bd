// Package poll implements the poll lifecycle and vote submission. Every
// multi-write operation runs inside a single database transaction so a
// partial failure never leaves orphaned rows.
package poll

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"pollboard/internal/apperr"
	"pollboard/internal/db"
)

const (
	minOptions = 2
	maxOptions = 10
)

type Service struct {
	conn      *gorm.DB
	polls     *db.PollRepo
	options   *db.OptionRepo
	responses *db.ResponseRepo
	admins    *db.AdminRepo
	users     *db.UserRepo
}

func NewService(conn *gorm.DB, polls *db.PollRepo, options *db.OptionRepo, responses *db.ResponseRepo, admins *db.AdminRepo, users *db.UserRepo) *Service {
	return &Service{
		conn:      conn,
		polls:     polls,
		options:   options,
		responses: responses,
		admins:    admins,
		users:     users,
	}
}

type CreatePollInput struct {
	Title       string
	Description string
	OptionTexts []string
	EndsAt      *time.Time
}

type UpdatePollInput struct {
	Title       string
	Description string
	EndsAt      *time.Time
}

// Results pairs the ranked options with the poll's total vote count.
type Results struct {
	Options    []db.PollOption `json:"options"`
	TotalVotes int64           `json:"totalVotes"`
}

// CreatePoll persists the poll and its options in creation order. The
// request boundary validates option shape; the count and distinctness
// checks are repeated here so the invariant holds for any caller.
func (s *Service) CreatePoll(adminID uint, input CreatePollInput) (*db.Poll, error) {
	slog.Info("creating poll", "title", input.Title, "admin_id", adminID)
	admin, err := s.admins.ByID(adminID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if admin == nil {
		return nil, apperr.NotFound("Admin", adminID)
	}
	if len(input.OptionTexts) < minOptions || len(input.OptionTexts) > maxOptions {
		return nil, apperr.InvalidOperation("poll must have between 2 and 10 options")
	}
	seen := make(map[string]struct{}, len(input.OptionTexts))
	for _, text := range input.OptionTexts {
		if _, dup := seen[text]; dup {
			return nil, apperr.InvalidOperation("poll options must be unique")
		}
		seen[text] = struct{}{}
	}

	poll := &db.Poll{
		Title:       input.Title,
		Description: input.Description,
		IsActive:    true,
		EndsAt:      input.EndsAt,
		AdminID:     adminID,
	}
	err = s.conn.Transaction(func(tx *gorm.DB) error {
		if err := s.polls.WithTx(tx).Create(poll); err != nil {
			return err
		}
		options := s.options.WithTx(tx)
		for _, text := range input.OptionTexts {
			option := &db.PollOption{PollID: poll.ID, OptionText: text}
			if err := options.Create(option); err != nil {
				return err
			}
			poll.Options = append(poll.Options, *option)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return poll, nil
}

func (s *Service) PollByID(pollID uint) (*db.Poll, error) {
	poll, err := s.polls.ByID(pollID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if poll == nil {
		return nil, apperr.NotFound("Poll", pollID)
	}
	return poll, nil
}

// ActivePolls lists polls currently open for voting.
func (s *Service) ActivePolls() ([]db.Poll, error) {
	polls, err := s.polls.ActiveNotExpired(time.Now().UTC())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return polls, nil
}

func (s *Service) PollsByAdmin(adminID uint) ([]db.Poll, error) {
	polls, err := s.polls.ByAdmin(adminID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return polls, nil
}

func (s *Service) ActivePollsByAdmin(adminID uint) ([]db.Poll, error) {
	polls, err := s.polls.ActiveByAdmin(adminID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return polls, nil
}

// ownedPoll loads a poll and verifies the acting admin owns it. A poll
// owned by someone else is Unauthorized, never NotFound.
func (s *Service) ownedPoll(adminID, pollID uint, operation string) (*db.Poll, error) {
	poll, err := s.PollByID(pollID)
	if err != nil {
		return nil, err
	}
	if poll.AdminID != adminID {
		return nil, apperr.Unauthorized(operation, "poll")
	}
	return poll, nil
}

// UpdatePoll replaces the mutable fields. Ownership and options are
// untouched.
func (s *Service) UpdatePoll(adminID, pollID uint, input UpdatePollInput) (*db.Poll, error) {
	slog.Info("updating poll", "poll_id", pollID, "admin_id", adminID)
	poll, err := s.ownedPoll(adminID, pollID, "update")
	if err != nil {
		return nil, err
	}
	poll.Title = input.Title
	poll.Description = input.Description
	poll.EndsAt = input.EndsAt
	if err := s.polls.Save(poll); err != nil {
		return nil, apperr.Internal(err)
	}
	return poll, nil
}

// ActivatePoll is idempotent; activating an active poll is a no-op
// success.
func (s *Service) ActivatePoll(adminID, pollID uint) error {
	return s.setActive(adminID, pollID, true, "activate")
}

func (s *Service) DeactivatePoll(adminID, pollID uint) error {
	return s.setActive(adminID, pollID, false, "deactivate")
}

func (s *Service) setActive(adminID, pollID uint, active bool, operation string) error {
	slog.Info("toggling poll", "poll_id", pollID, "active", active)
	poll, err := s.ownedPoll(adminID, pollID, operation)
	if err != nil {
		return err
	}
	if poll.IsActive == active {
		return nil
	}
	poll.IsActive = active
	if err := s.polls.Save(poll); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// DeletePoll removes the poll together with its options and responses.
func (s *Service) DeletePoll(adminID, pollID uint) error {
	slog.Info("deleting poll", "poll_id", pollID, "admin_id", adminID)
	if _, err := s.ownedPoll(adminID, pollID, "delete"); err != nil {
		return err
	}
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		return s.polls.WithTx(tx).Delete(pollID)
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// PollOptions returns the poll's options ranked by vote count.
func (s *Service) PollOptions(pollID uint) ([]db.PollOption, error) {
	if _, err := s.PollByID(pollID); err != nil {
		return nil, err
	}
	options, err := s.options.ByPoll(pollID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return options, nil
}

func (s *Service) TotalVotes(pollID uint) (int64, error) {
	count, err := s.responses.CountByPoll(pollID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

func (s *Service) PollResults(pollID uint) (*Results, error) {
	options, err := s.PollOptions(pollID)
	if err != nil {
		return nil, err
	}
	total, err := s.TotalVotes(pollID)
	if err != nil {
		return nil, err
	}
	return &Results{Options: options, TotalVotes: total}, nil
}

func (s *Service) HasVoted(userID, pollID uint) (bool, error) {
	voted, err := s.responses.ExistsByUserAndPoll(userID, pollID)
	if err != nil {
		return false, apperr.Internal(err)
	}
	return voted, nil
}

// PollsVotedBy returns the distinct polls the user has cast a vote in.
func (s *Service) PollsVotedBy(userID uint) ([]db.Poll, error) {
	polls, err := s.responses.DistinctPollsByUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return polls, nil
}
