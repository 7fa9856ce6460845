package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pilinks/models"
)

type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByPiUID(piUID string) (*models.User, error)
	// Upsert creates the user or refreshes the row matching user.PiUID.
	// Re-authenticating the same Pi identity never creates a second row.
	Upsert(user *models.User) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByPiUID(piUID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "pi_uid = ?", piUID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Upsert(user *models.User) (*models.User, error) {
	existing, err := r.GetByPiUID(user.PiUID)
	if errors.Is(err, models.ErrNotFound) {
		if err := r.db.Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	existing.PiUsername = user.PiUsername
	existing.Role = user.Role
	if err := r.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
