// Package account implements registration, authentication and profile
// management for the two identity spaces. Voters and admins never share
// uniqueness domains, so the services are kept separate.
package account

import (
	"log/slog"

	"pollboard/internal/apperr"
	"pollboard/internal/auth"
	"pollboard/internal/db"
)

type RegistrationInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type ProfileUpdate struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

type Users struct {
	repo   *db.UserRepo
	hasher *auth.Hasher
}

func NewUsers(repo *db.UserRepo, hasher *auth.Hasher) *Users {
	return &Users{repo: repo, hasher: hasher}
}

func (s *Users) Register(input RegistrationInput) (*db.User, error) {
	slog.Info("creating user", "username", input.Username)
	taken, err := s.repo.ExistsByUsername(input.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Duplicate("username", input.Username)
	}
	taken, err = s.repo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Duplicate("email", input.Email)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	user := &db.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  digest,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if err := s.repo.Create(user); err != nil {
		// Lost a race against a concurrent registration.
		if db.IsUniqueViolation(err) {
			return nil, apperr.Duplicate("username or email", input.Username)
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (s *Users) Authenticate(email, password string) (*db.User, error) {
	user, err := s.repo.ByEmail(email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		return nil, apperr.InvalidCredentials()
	}
	return user, nil
}

func (s *Users) ByID(id uint) (*db.User, error) {
	user, err := s.repo.ByID(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("User", id)
	}
	return user, nil
}

func (s *Users) All() ([]db.User, error) {
	users, err := s.repo.All()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// Update mutates profile fields; uniqueness is re-checked only for the
// fields that actually change.
func (s *Users) Update(id uint, input ProfileUpdate) (*db.User, error) {
	slog.Info("updating user", "id", id)
	user, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if input.Username != user.Username {
		taken, err := s.repo.ExistsByUsername(input.Username)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if taken {
			return nil, apperr.Duplicate("username", input.Username)
		}
	}
	if input.Email != user.Email {
		taken, err := s.repo.ExistsByEmail(input.Email)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if taken {
			return nil, apperr.Duplicate("email", input.Email)
		}
	}
	user.Username = input.Username
	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	if err := s.repo.Save(user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}
