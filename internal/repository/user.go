package repository

import (
	"errors"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateByID(id uint, updates map[string]interface{}) (*models.User, error) {
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *UserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Find(&users).Error
	return users, err
}

// AdjustPostCount reads the current count and writes it back with the
// delta applied. Deliberately not atomic: concurrent create/delete on
// the same user can lose an update, same as the original behavior.
func (r *UserRepository) AdjustPostCount(id uint, delta int) error {
	user, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("posts", user.Posts+delta).Error
}
