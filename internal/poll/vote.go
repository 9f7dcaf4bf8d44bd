package poll

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"pollboard/internal/apperr"
	"pollboard/internal/db"
)

const alreadyVotedMessage = "user has already voted on this poll"

// SubmitVote validates voter, poll and option, then increments the
// option's counter and records the response in one transaction. The
// validation sequence fails fast: the first violated precondition wins
// and nothing is written.
//
// Two concurrent votes for the same (user, poll) can both pass the
// existence check; the composite unique index on poll_responses decides
// the race and the loser surfaces the same already-voted failure.
func (s *Service) SubmitVote(userID, pollID, optionID uint) (*db.PollResponse, error) {
	slog.Info("submitting vote", "user_id", userID, "poll_id", pollID, "option_id", optionID)
	var response *db.PollResponse
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		polls := s.polls.WithTx(tx)
		options := s.options.WithTx(tx)
		responses := s.responses.WithTx(tx)

		user, err := users.ByID(userID)
		if err != nil {
			return apperr.Internal(err)
		}
		if user == nil {
			return apperr.NotFound("User", userID)
		}

		poll, err := polls.ByID(pollID)
		if err != nil {
			return apperr.Internal(err)
		}
		if poll == nil {
			return apperr.NotFound("Poll", pollID)
		}
		if !poll.Open(time.Now().UTC()) {
			return apperr.InvalidOperation("poll is not active or has expired")
		}

		voted, err := responses.ExistsByUserAndPoll(userID, pollID)
		if err != nil {
			return apperr.Internal(err)
		}
		if voted {
			return apperr.InvalidOperation(alreadyVotedMessage)
		}

		option, err := options.ByID(optionID)
		if err != nil {
			return apperr.Internal(err)
		}
		if option == nil {
			return apperr.NotFound("Poll option", optionID)
		}
		if option.PollID != pollID {
			return apperr.InvalidOperation("option does not belong to this poll")
		}

		if err := options.IncrementVoteCount(optionID); err != nil {
			return apperr.Internal(err)
		}
		record := &db.PollResponse{
			UserID:       userID,
			PollID:       pollID,
			PollOptionID: optionID,
			ResponseDate: time.Now().UTC(),
		}
		if err := responses.Create(record); err != nil {
			// The concurrent loser lands here; rolling back undoes
			// the counter increment above.
			if db.IsUniqueViolation(err) {
				return apperr.InvalidOperation(alreadyVotedMessage)
			}
			return apperr.Internal(err)
		}
		response = record
		return nil
	})
	if err != nil {
		if appErr, ok := apperr.As(err); ok {
			return nil, appErr
		}
		return nil, apperr.Internal(err)
	}
	return response, nil
}
