package db

import (
	"errors"

	"gorm.io/gorm"
)

type AdminRepo struct {
	conn *gorm.DB
}

func NewAdminRepo(conn *gorm.DB) *AdminRepo {
	return &AdminRepo{conn: conn}
}

func (r *AdminRepo) WithTx(tx *gorm.DB) *AdminRepo {
	return &AdminRepo{conn: tx}
}

func (r *AdminRepo) ByID(id uint) (*Admin, error) {
	var admin Admin
	if err := r.conn.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepo) ByEmail(email string) (*Admin, error) {
	var admin Admin
	if err := r.conn.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepo) ByUsername(username string) (*Admin, error) {
	var admin Admin
	if err := r.conn.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepo) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.conn.Model(&Admin{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *AdminRepo) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.conn.Model(&Admin{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *AdminRepo) Create(admin *Admin) error {
	return r.conn.Create(admin).Error
}

func (r *AdminRepo) Save(admin *Admin) error {
	return r.conn.Save(admin).Error
}

func (r *AdminRepo) All() ([]Admin, error) {
	var admins []Admin
	err := r.conn.Order("id").Find(&admins).Error
	return admins, err
}
