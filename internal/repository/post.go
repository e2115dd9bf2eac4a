package repository

import (
	"errors"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/models"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListAll returns the global feed, most recently updated first.
func (r *PostRepository) ListAll() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("updated_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByCategory(category string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("category = ?", category).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByCreator(creatorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) UpdateByID(id uint, updates map[string]interface{}) (*models.Post, error) {
	if err := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *PostRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
