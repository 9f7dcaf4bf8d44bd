package db

import (
	"errors"

	"gorm.io/gorm"
)

type UserRepo struct {
	conn *gorm.DB
}

func NewUserRepo(conn *gorm.DB) *UserRepo {
	return &UserRepo{conn: conn}
}

// WithTx rebinds the repo to a transaction handle.
func (r *UserRepo) WithTx(tx *gorm.DB) *UserRepo {
	return &UserRepo{conn: tx}
}

// ByID returns nil when no user exists with the given id.
func (r *UserRepo) ByID(id uint) (*User, error) {
	var user User
	if err := r.conn.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ByEmail(email string) (*User, error) {
	var user User
	if err := r.conn.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ByUsername(username string) (*User, error) {
	var user User
	if err := r.conn.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.conn.Model(&User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.conn.Model(&User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepo) Create(user *User) error {
	return r.conn.Create(user).Error
}

func (r *UserRepo) Save(user *User) error {
	return r.conn.Save(user).Error
}

func (r *UserRepo) All() ([]User, error) {
	var users []User
	err := r.conn.Order("id").Find(&users).Error
	return users, err
}
