package account

import (
	"log/slog"

	"pollboard/internal/apperr"
	"pollboard/internal/auth"
	"pollboard/internal/db"
)

type Admins struct {
	repo   *db.AdminRepo
	hasher *auth.Hasher
}

func NewAdmins(repo *db.AdminRepo, hasher *auth.Hasher) *Admins {
	return &Admins{repo: repo, hasher: hasher}
}

func (s *Admins) Register(input RegistrationInput) (*db.Admin, error) {
	slog.Info("creating admin", "username", input.Username)
	taken, err := s.repo.ExistsByUsername(input.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Duplicate("admin username", input.Username)
	}
	taken, err = s.repo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Duplicate("admin email", input.Email)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	admin := &db.Admin{
		Username:  input.Username,
		Email:     input.Email,
		Password:  digest,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if err := s.repo.Create(admin); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Duplicate("admin username or email", input.Username)
		}
		return nil, apperr.Internal(err)
	}
	return admin, nil
}

func (s *Admins) Authenticate(email, password string) (*db.Admin, error) {
	admin, err := s.repo.ByEmail(email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if admin == nil || !s.hasher.Compare(admin.Password, password) {
		return nil, apperr.InvalidCredentials()
	}
	return admin, nil
}

func (s *Admins) ByID(id uint) (*db.Admin, error) {
	admin, err := s.repo.ByID(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if admin == nil {
		return nil, apperr.NotFound("Admin", id)
	}
	return admin, nil
}

func (s *Admins) All() ([]db.Admin, error) {
	admins, err := s.repo.All()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return admins, nil
}

func (s *Admins) Update(id uint, input ProfileUpdate) (*db.Admin, error) {
	slog.Info("updating admin", "id", id)
	admin, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if input.Username != admin.Username {
		taken, err := s.repo.ExistsByUsername(input.Username)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if taken {
			return nil, apperr.Duplicate("admin username", input.Username)
		}
	}
	if input.Email != admin.Email {
		taken, err := s.repo.ExistsByEmail(input.Email)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if taken {
			return nil, apperr.Duplicate("admin email", input.Email)
		}
	}
	admin.Username = input.Username
	admin.Email = input.Email
	admin.FirstName = input.FirstName
	admin.LastName = input.LastName
	if err := s.repo.Save(admin); err != nil {
		return nil, apperr.Internal(err)
	}
	return admin, nil
}
