package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/sefazor/maeum-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository stores users in postgres.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.StoredUser) error {
	err := r.db.WithContext(ctx).Create(newUserRecord(user)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrDuplicateEmail
	}
	return dbError("create user", err, nil)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.StoredUser, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, dbError("get user", err, models.ErrUserNotFound)
	}
	return rec.model(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.StoredUser, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&rec).Error
	if err != nil {
		return nil, dbError("get user by email", err, models.ErrUserNotFound)
	}
	return rec.model(), nil
}

// Update locks the row for the duration of mutate.
func (r *UserRepository) Update(ctx context.Context, id string, mutate func(*models.StoredUser) error) (*models.StoredUser, error) {
	var updated *models.StoredUser
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec userRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return dbError("lock user", err, models.ErrUserNotFound)
		}
		user := rec.model()
		if err := mutate(user); err != nil {
			return err
		}
		err := tx.Save(newUserRecord(user)).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateEmail
		}
		if err != nil {
			return dbError("save user", err, nil)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
